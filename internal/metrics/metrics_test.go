package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/simulation"
)

func TestMetricsTrackTicks(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.NotifyTick(simulation.TickReport{Appended: make([]messages.SampleData, 5)})
	m.NotifyTick(simulation.TickReport{Frozen: []string{"a", "b"}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Ticks))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.SamplesAppended))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SamplesFrozen))
}

func TestMetricsTrackEvents(t *testing.T) {
	m := New(prometheus.NewRegistry())
	plots := []entities.Plot{
		{ID: "a", Moisture: 28, Temperature: 31},
		{ID: "b", Moisture: 45, Temperature: 29},
	}

	m.NotifyEvent(messages.PlotEvent{Kind: messages.EventRain, Applied: true, Plots: plots})
	m.NotifyEvent(messages.PlotEvent{Kind: messages.EventIrrigation, Applied: false, Plots: plots})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events.WithLabelValues("rain")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Events.WithLabelValues("irrigation")))
	assert.Equal(t, 28.0, testutil.ToFloat64(m.PlotMoisture.WithLabelValues("a")))
	assert.Equal(t, 29.0, testutil.ToFloat64(m.PlotTemperature.WithLabelValues("b")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlotsByStatus.WithLabelValues("critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlotsByStatus.WithLabelValues("healthy")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PlotsByStatus.WithLabelValues("warning")))
}
