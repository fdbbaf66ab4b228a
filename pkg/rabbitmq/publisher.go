package rabbitmq

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher interface defines the methods to publish a message
type IPublisher interface {
	PublishMessage(message interface{}) error
	PublishTo(topic string, qos byte, retained bool, message interface{}) error
	Close()
}

// Publisher publishes on a default topic, or on any topic through PublishTo.
type Publisher struct {
	client mqtt.Client
	topic  string
}

var _ IPublisher = (*Publisher)(nil)

func NewPublisher(client mqtt.Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// PublishMessage publishes on the default topic at QoS 0.
func (p *Publisher) PublishMessage(message interface{}) error {
	return p.PublishTo(p.topic, 0, false, message)
}

// PublishTo accepts string or []byte payloads.
func (p *Publisher) PublishTo(topic string, qos byte, retained bool, message interface{}) error {
	switch message.(type) {
	case string, []byte:
	default:
		return fmt.Errorf("invalid message format %T, expected string or []byte", message)
	}
	token := p.client.Publish(topic, qos, retained, message)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", topic, err)
	}
	return nil
}

// Close disconnects the shared client.
func (p *Publisher) Close() {
	CloseRabbitMQConn(p.client)
}
