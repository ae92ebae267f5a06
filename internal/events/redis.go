package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel is the Redis pub/sub channel ticket events are published to.
// External consumers (e.g. a push gateway patching clients with
// deltas) can subscribe instead of polling the list endpoint.
const Channel = "updoc.ticket-events"

// RedisPublisher forwards dispatched events to a Redis channel.
// Publishing is best-effort: a broker outage must never fail the
// ticket mutation that produced the event.
type RedisPublisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPublisher creates the publisher.
func NewRedisPublisher(client *redis.Client, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, logger: logger}
}

// RegisterHandlers subscribes the publisher to all ticket events.
func (p *RedisPublisher) RegisterHandlers(dispatcher Dispatcher) {
	if p == nil || p.client == nil || dispatcher == nil {
		return
	}
	dispatcher.Subscribe(EventTicketCreated, p.publish)
	dispatcher.Subscribe(EventTicketStatusChanged, p.publish)
	dispatcher.Subscribe(EventTicketDeleted, p.publish)
}

func (p *RedisPublisher) publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event", zap.Error(err))
		return err
	}
	if err := p.client.Publish(ctx, Channel, body).Err(); err != nil {
		p.logger.Warn("publish event to redis",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}
