package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldProcessWithinTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := New(time.Minute, 10)
	d.now = func() time.Time { return now }

	assert.True(t, d.ShouldProcess("a"))
	assert.False(t, d.ShouldProcess("a"))

	now = now.Add(2 * time.Minute)
	assert.True(t, d.ShouldProcess("a"), "expired entries are processed again")
	assert.True(t, d.ShouldProcess(""))
}

func TestCapacityEvictsOldest(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := New(time.Hour, 2)
	d.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		assert.True(t, d.ShouldProcess(k))
		now = now.Add(time.Second)
	}
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.ShouldProcess("a"), "oldest was evicted")
	assert.False(t, d.ShouldProcess("c"))
}
