package events

import (
	"context"
	"fmt"

	"clinicdesk/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type consumerChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// CacheInvalidationListener consumes change events published by any instance
// and invalidates this instance's dashboard cache. Each listener owns a
// server-named, exclusive queue so every instance receives every event.
type CacheInvalidationListener struct {
	channel  consumerChannel
	exchange string
	target   Invalidator
	metrics  *metrics.EventMetrics
	logger   *zap.Logger
}

// NewCacheInvalidationListener returns nil, nil when conn is nil (events disabled).
func NewCacheInvalidationListener(conn *amqp.Connection, exchange string, target Invalidator, m *metrics.EventMetrics, logger *zap.Logger) (*CacheInvalidationListener, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conn == nil {
		logger.Info("RabbitMQ is disabled, cache invalidation listener will not be started")
		return nil, nil
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return newCacheInvalidationListener(channel, exchange, target, m, logger), nil
}

func newCacheInvalidationListener(channel consumerChannel, exchange string, target Invalidator, m *metrics.EventMetrics, logger *zap.Logger) *CacheInvalidationListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheInvalidationListener{
		channel:  channel,
		exchange: exchange,
		target:   target,
		metrics:  m,
		logger:   logger,
	}
}

// Start declares and binds this instance's queue, then consumes until ctx is cancelled.
// The queue is non-durable and auto-deleted, so it goes away with the connection.
func (l *CacheInvalidationListener) Start(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if err := l.channel.ExchangeDeclare(l.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", l.exchange, err)
	}
	q, err := l.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare listener queue: %w", err)
	}
	for _, pattern := range []string{
		RoutingKeyPrefix + "." + ResourceAppointment + ".*",
		RoutingKeyPrefix + "." + ResourceSchedule + ".*",
	} {
		if err := l.channel.QueueBind(q.Name, pattern, l.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s to %s: %w", q.Name, pattern, err)
		}
	}

	msgs, err := l.channel.Consume(q.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", q.Name, err)
	}
	l.logger.Info("Cache invalidation listener started", zap.String("queue", q.Name))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("Cache invalidation delivery channel closed")
					return
				}
				if err := l.handle(ctx, msg.RoutingKey); err != nil {
					l.logger.Warn("Dropping event", zap.String("routingKey", msg.RoutingKey), zap.Error(err))
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()
	return nil
}

func (l *CacheInvalidationListener) handle(ctx context.Context, routingKey string) error {
	key, err := ParseRoutingKey(routingKey)
	if err != nil {
		l.metrics.ObserveConsumed(routingKey, "invalid")
		return err
	}
	switch key.Resource {
	case ResourceAppointment, ResourceSchedule:
	default:
		l.metrics.ObserveConsumed(routingKey, "ignored")
		return nil
	}
	if err := l.target.Invalidate(ctx); err != nil {
		l.metrics.ObserveConsumed(routingKey, "error")
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	l.metrics.ObserveConsumed(routingKey, "ok")
	return nil
}

func (l *CacheInvalidationListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}
	return l.channel.Close()
}
