package events

import (
	"context"
	"encoding/json"
	"fmt"

	"clinicdesk/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher emits domain events.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// amqpChannel is the part of *amqp.Channel the publisher needs.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events to a topic exchange.
type AMQPPublisher struct {
	channel  amqpChannel
	exchange string
	metrics  *metrics.EventMetrics
}

// NewAMQPPublisher opens a channel on conn and declares the topic exchange.
func NewAMQPPublisher(conn *amqp.Connection, exchange string, m *metrics.EventMetrics) (*AMQPPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		channel.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{channel: channel, exchange: exchange, metrics: m}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    evt.ID,
		Timestamp:    evt.OccurredAt,
		Headers: amqp.Table{
			"resource": evt.Resource,
			"action":   evt.Action,
		},
	}

	key := evt.RoutingKey()
	if err := p.channel.PublishWithContext(ctx, p.exchange, key, false, false, message); err != nil {
		p.metrics.ObservePublished(key, "error")
		return fmt.Errorf("failed to publish message: %w", err)
	}
	p.metrics.ObservePublished(key, "ok")
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p == nil || p.channel == nil {
		return nil
	}
	return p.channel.Close()
}

// Invalidator drops derived data that an event may have made stale.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Dispatcher invalidates local caches, then forwards the event to the broker.
// Neither step fails the caller's write: errors are logged.
type Dispatcher struct {
	Remote Publisher
	Local  []Invalidator
	Logger *zap.Logger
}

func (d *Dispatcher) Publish(ctx context.Context, evt Event) error {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, inv := range d.Local {
		if err := inv.Invalidate(ctx); err != nil {
			logger.Warn("Failed to invalidate local cache", zap.String("routingKey", evt.RoutingKey()), zap.Error(err))
		}
	}
	if d.Remote == nil {
		return nil
	}
	if err := d.Remote.Publish(ctx, evt); err != nil {
		logger.Error("Failed to publish event", zap.String("routingKey", evt.RoutingKey()), zap.Error(err))
	}
	return nil
}
