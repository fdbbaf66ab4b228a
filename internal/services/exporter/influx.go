package exporter

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
)

// PointWriter is the subset of api.WriteAPIBlocking the sink needs.
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// InfluxConfig configurazione Influx
type InfluxConfig struct {
	URL              string
	Token            string
	Org              string
	Bucket           string
	Measurement      string // default "plot_reading"
	EventMeasurement string // default "plot_event"
}

type InfluxSink struct {
	writer           PointWriter
	measurement      string
	eventMeasurement string
}

var _ Sink = (*InfluxSink)(nil)

// NewInfluxSink opens a blocking write API on the configured bucket.
// The returned client must be closed by the caller.
func NewInfluxSink(cfg InfluxConfig) (*InfluxSink, influxdb2.Client, error) {
	if cfg.URL == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, nil, fmt.Errorf("influx config incomplete")
	}
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return NewInfluxSinkWithWriter(client.WriteAPIBlocking(cfg.Org, cfg.Bucket), cfg.Measurement, cfg.EventMeasurement), client, nil
}

func NewInfluxSinkWithWriter(w PointWriter, measurement, eventMeasurement string) *InfluxSink {
	if measurement == "" {
		measurement = "plot_reading"
	}
	if eventMeasurement == "" {
		eventMeasurement = "plot_event"
	}
	return &InfluxSink{writer: w, measurement: measurement, eventMeasurement: eventMeasurement}
}

func (s *InfluxSink) Name() string { return "influx" }

func (s *InfluxSink) WriteSamples(ctx context.Context, samples []messages.SampleData) error {
	if len(samples) == 0 {
		return nil
	}
	points := make([]*write.Point, 0, len(samples))
	for _, sd := range samples {
		ts := sd.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		points = append(points, influxdb2.NewPoint(s.measurement,
			map[string]string{"plot_id": sd.PlotID, "crop": sd.Crop},
			map[string]interface{}{
				"moisture":    sd.Moisture,
				"temperature": sd.Temperature,
				"hour":        sd.Hour,
			}, ts))
	}
	if err := s.writer.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("influx write samples: %w", err)
	}
	return nil
}

func (s *InfluxSink) WriteEvent(ctx context.Context, evt messages.PlotEvent) error {
	tags := map[string]string{"kind": string(evt.Kind)}
	if evt.PlotID != "" {
		tags["plot_id"] = evt.PlotID
	}
	p := influxdb2.NewPoint(s.eventMeasurement, tags,
		map[string]interface{}{
			"applied": evt.Applied,
			"plots":   len(evt.Plots),
			"count":   int64(1),
		}, evt.Timestamp)
	if err := s.writer.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("influx write event: %w", err)
	}
	return nil
}
