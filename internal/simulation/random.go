package simulation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source yields uniform values in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Fixed is a Source that always returns the same value; tests use it to
// pin every draw to a known point of its range.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }

// Sequence replays the given values in order and then repeats the last one.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

// NewSeededSource returns a deterministic PCG source.
// seed 0 means "seed from the clock".
func NewSeededSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
