package exporter

import (
	"context"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
)

// Sink is an outbound destination for engine output.
// Nothing is ever read back from a sink.
type Sink interface {
	Name() string
	WriteSamples(ctx context.Context, samples []messages.SampleData) error
	WriteEvent(ctx context.Context, evt messages.PlotEvent) error
}
