package messages

import (
	"time"
)

// SampleData is the exported form of a sample appended by a tick.
type SampleData struct {
	PlotID      string    `json:"plot_id"`
	Crop        string    `json:"crop"`
	Time        string    `json:"time"` // simulated label "HH:00"
	Hour        int       `json:"hour"`
	Moisture    float64   `json:"moisture"`
	Temperature float64   `json:"temperature"`
	Timestamp   time.Time `json:"timestamp"` // wall clock of the tick
}
