package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/recommendation"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/simulation"
)

const namespace = "agridash"

// Metrics raccoglie i collector Prometheus del dashboard.
// Implementa simulation.Notifier, quindi si aggiorna ad ogni tick/evento.
type Metrics struct {
	Ticks           prometheus.Counter
	SamplesAppended prometheus.Counter
	SamplesFrozen   prometheus.Counter
	Events          *prometheus.CounterVec
	PlotMoisture    *prometheus.GaugeVec
	PlotTemperature *prometheus.GaugeVec
	PlotsByStatus   *prometheus.GaugeVec
	ExportDropped   prometheus.Counter
	ExportFailures  *prometheus.CounterVec
}

var _ simulation.Notifier = (*Metrics)(nil)

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "ticks_total",
			Help: "Periodic simulation steps executed.",
		}),
		SamplesAppended: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "samples_appended_total",
			Help: "Samples appended to plot series.",
		}),
		SamplesFrozen: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "samples_frozen_total",
			Help: "Per-plot ticks skipped because the series reached the end of the day.",
		}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "events_total",
			Help: "Applied user operations by kind.",
		}, []string{"kind"}),
		PlotMoisture: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "plot_moisture",
			Help: "Live soil moisture per plot.",
		}, []string{"plot"}),
		PlotTemperature: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "plot_temperature",
			Help: "Live temperature per plot (°C).",
		}, []string{"plot"}),
		PlotsByStatus: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "plots_by_status",
			Help: "Number of plots per recommendation status.",
		}, []string{"status"}),
		ExportDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "export_dropped_total",
			Help: "Export items dropped because the queue was full.",
		}),
		ExportFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "export_failures_total",
			Help: "Failed export writes by sink.",
		}, []string{"sink"}),
	}
}

// ObservePlots sets the per-plot gauges and the status counts.
func (m *Metrics) ObservePlots(plots []entities.Plot) {
	for _, p := range plots {
		m.PlotMoisture.WithLabelValues(p.ID).Set(p.Moisture)
		m.PlotTemperature.WithLabelValues(p.ID).Set(p.Temperature)
	}
	s := recommendation.Summarize(plots)
	m.PlotsByStatus.WithLabelValues(string(recommendation.StatusCritical)).Set(float64(s.Critical))
	m.PlotsByStatus.WithLabelValues(string(recommendation.StatusWarning)).Set(float64(s.Warning))
	m.PlotsByStatus.WithLabelValues(string(recommendation.StatusHealthy)).Set(float64(s.Healthy))
}

func (m *Metrics) NotifyTick(rep simulation.TickReport) {
	m.Ticks.Inc()
	m.SamplesAppended.Add(float64(len(rep.Appended)))
	m.SamplesFrozen.Add(float64(len(rep.Frozen)))
}

func (m *Metrics) NotifyEvent(evt messages.PlotEvent) {
	if !evt.Applied {
		return
	}
	m.Events.WithLabelValues(string(evt.Kind)).Inc()
	m.ObservePlots(evt.Plots)
}
