package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

const redisChannelPrefix = "transactions:"

// RedisNotifier publishes and subscribes to transaction events over Redis pub/sub,
// so every API replica sees changes made through any other.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier on the given client.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{
		client: client,
	}
}

// ChannelName returns the pub/sub channel carrying userID's events.
func ChannelName(userID uuid.UUID) string {
	return redisChannelPrefix + userID.String()
}

// Publish sends the event as JSON on the user's channel.
func (n *RedisNotifier) Publish(ctx context.Context, event entity.TransactionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := n.client.Publish(ctx, ChannelName(event.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe opens a pub/sub connection on the user's channel. It returns once
// the subscription is confirmed, so no event published afterwards is missed.
func (n *RedisNotifier) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.TransactionEvent, error) {
	pubsub := n.client.Subscribe(ctx, ChannelName(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", ChannelName(userID), err)
	}

	out := make(chan entity.TransactionEvent, DefaultSubscriberBuffer)

	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var event entity.TransactionEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					slog.Warn("Discarding malformed transaction event", "channel", msg.Channel, "error", err)
					continue
				}

				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
