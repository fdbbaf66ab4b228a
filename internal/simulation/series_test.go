package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
)

func TestTimeSeriesEvictsOldestFirst(t *testing.T) {
	ts := NewTimeSeries(3)
	for h := 0; h < 5; h++ {
		ts.Append(entities.Sample{Time: entities.HourLabel(h)})
		assert.LessOrEqual(t, ts.Len(), 3)
	}
	got := ts.Samples()
	assert.Equal(t, []string{"02:00", "03:00", "04:00"}, []string{got[0].Time, got[1].Time, got[2].Time})

	last, ok := ts.Last()
	assert.True(t, ok)
	assert.Equal(t, "04:00", last.Time)
}

func TestTimeSeriesSamplesSurviveEviction(t *testing.T) {
	ts := NewTimeSeries(2)
	ts.Append(entities.Sample{Time: "06:00"})
	ts.Append(entities.Sample{Time: "08:00"})
	held := ts.Samples()

	ts.Append(entities.Sample{Time: "10:00"})
	assert.Equal(t, "06:00", held[0].Time)
	assert.Equal(t, "08:00", ts.Samples()[0].Time)
}

func TestTimeSeriesEmpty(t *testing.T) {
	ts := NewTimeSeries(0)
	assert.Equal(t, 1, ts.Capacity())
	_, ok := ts.Last()
	assert.False(t, ok)
	assert.Empty(t, ts.Samples())
}
