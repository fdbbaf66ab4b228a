package messages

import (
	"time"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
)

// EventKind identifies a user-triggered engine operation.
type EventKind string

const (
	EventRain       EventKind = "rain"
	EventIrrigation EventKind = "irrigation"
	EventReset      EventKind = "reset"
	EventSelect     EventKind = "select"
)

// PlotEvent is emitted after an operation has been applied.
// Plots is the full snapshot after the change.
type PlotEvent struct {
	ID        string          `json:"id"`
	Kind      EventKind       `json:"kind"`
	PlotID    string          `json:"plot_id,omitempty"` // irrigation/select target
	Applied   bool            `json:"applied"`
	Plots     []entities.Plot `json:"plots"`
	Timestamp time.Time       `json:"timestamp"`
}
