package simulation

import "github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"

// TimeSeries is a bounded FIFO window of samples for one plot.
// Length never exceeds the capacity; the oldest sample is evicted first.
type TimeSeries struct {
	capacity int
	samples  []entities.Sample
}

func NewTimeSeries(capacity int) *TimeSeries {
	if capacity <= 0 {
		capacity = 1
	}
	return &TimeSeries{capacity: capacity, samples: make([]entities.Sample, 0, capacity)}
}

// Append adds s at the end and drops from the front past capacity.
func (ts *TimeSeries) Append(s entities.Sample) {
	if len(ts.samples) == ts.capacity {
		// nuovo backing array: le copie già consegnate ai lettori restano valide
		next := make([]entities.Sample, ts.capacity-1, ts.capacity)
		copy(next, ts.samples[1:])
		ts.samples = next
	}
	ts.samples = append(ts.samples, s)
}

func (ts *TimeSeries) Last() (entities.Sample, bool) {
	if len(ts.samples) == 0 {
		return entities.Sample{}, false
	}
	return ts.samples[len(ts.samples)-1], true
}

func (ts *TimeSeries) Len() int      { return len(ts.samples) }
func (ts *TimeSeries) Capacity() int { return ts.capacity }

// Samples returns a chronological copy.
func (ts *TimeSeries) Samples() []entities.Sample {
	out := make([]entities.Sample, len(ts.samples))
	copy(out, ts.samples)
	return out
}
