package exporter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
	"github.com/LeonardoBeccarini/agri_dashboard/pkg/rabbitmq"
)

const (
	DefaultSampleTopic = "dashboard/samples/{plot}"
	DefaultEventTopic  = "dashboard/events/{kind}"
)

// MQTTSink publishes samples (QoS 0) and events (QoS 1) as JSON.
type MQTTSink struct {
	publisher   rabbitmq.IPublisher
	sampleTopic string
	eventTopic  string
}

var _ Sink = (*MQTTSink)(nil)

func NewMQTTSink(p rabbitmq.IPublisher, sampleTopic, eventTopic string) *MQTTSink {
	if sampleTopic == "" {
		sampleTopic = DefaultSampleTopic
	}
	if eventTopic == "" {
		eventTopic = DefaultEventTopic
	}
	return &MQTTSink{publisher: p, sampleTopic: sampleTopic, eventTopic: eventTopic}
}

func (s *MQTTSink) Name() string { return "mqtt" }

func (s *MQTTSink) WriteSamples(_ context.Context, samples []messages.SampleData) error {
	for _, sd := range samples {
		b, err := json.Marshal(sd)
		if err != nil {
			return fmt.Errorf("marshal sample %s: %w", sd.PlotID, err)
		}
		topic := rabbitmq.ExpandTopic(s.sampleTopic, "plot", sd.PlotID)
		if err := s.publisher.PublishTo(topic, 0, false, b); err != nil {
			return err
		}
	}
	return nil
}

func (s *MQTTSink) WriteEvent(_ context.Context, evt messages.PlotEvent) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", evt.ID, err)
	}
	topic := rabbitmq.ExpandTopic(s.eventTopic, "kind", string(evt.Kind), "plot", evt.PlotID)
	return s.publisher.PublishTo(topic, 1, false, b)
}
