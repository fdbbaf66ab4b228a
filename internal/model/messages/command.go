package messages

import "time"

// Command arriva sul topic dashboard/command/# e pilota il motore.
type Command struct {
	ID        string    `json:"id"`
	Action    EventKind `json:"action"`
	PlotID    string    `json:"plot_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
