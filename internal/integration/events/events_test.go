package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func receive(t *testing.T, ch <-chan entity.TransactionEvent) entity.TransactionEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return entity.TransactionEvent{}
}

func waitClosed(t *testing.T, ch <-chan entity.TransactionEvent) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel was not closed")
		}
	}
}

func TestBroker(t *testing.T) {
	t.Run("delivers only to the event's user", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		broker := NewBroker(0)
		alice, bob := uuid.New(), uuid.New()

		aliceEvents, _ := broker.Subscribe(ctx, alice)
		bobEvents, _ := broker.Subscribe(ctx, bob)

		event := entity.NewTransactionEvent(entity.TransactionEventCreated, alice, uuid.New())
		if err := broker.Publish(ctx, event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := receive(t, aliceEvents)
		if got.TransactionID != event.TransactionID {
			t.Errorf("expected %s, got %s", event.TransactionID, got.TransactionID)
		}
		select {
		case e := <-bobEvents:
			t.Errorf("bob received alice's event: %+v", e)
		default:
		}
	})

	t.Run("full buffer drops instead of blocking", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		broker := NewBroker(1)
		userID := uuid.New()
		events, _ := broker.Subscribe(ctx, userID)

		done := make(chan struct{})
		go func() {
			for i := 0; i < 5; i++ {
				_ = broker.Publish(ctx, entity.NewTransactionEvent(entity.TransactionEventUpdated, userID, uuid.New()))
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("publish blocked on a slow subscriber")
		}
		if len(events) != 1 {
			t.Errorf("expected 1 buffered event, got %d", len(events))
		}
	})

	t.Run("cancel closes the channel and unregisters", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		broker := NewBroker(0)
		userID := uuid.New()

		events, _ := broker.Subscribe(ctx, userID)
		if broker.SubscriberCount(userID) != 1 {
			t.Fatalf("expected 1 subscriber, got %d", broker.SubscriberCount(userID))
		}

		cancel()
		waitClosed(t, events)

		if broker.SubscriberCount(userID) != 0 {
			t.Errorf("expected no subscribers, got %d", broker.SubscriberCount(userID))
		}
		if err := broker.Publish(context.Background(), entity.NewTransactionEvent(entity.TransactionEventDeleted, userID, uuid.New())); err != nil {
			t.Errorf("publish after unsubscribe failed: %v", err)
		}
	})
}

func TestRedisNotifier(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	notifier := NewRedisNotifier(client)
	userID := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := notifier.Subscribe(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	event := entity.NewTransactionEvent(entity.TransactionEventCreated, userID, uuid.New())
	if err := notifier.Publish(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := receive(t, events)
	if got.Kind != entity.TransactionEventCreated || got.TransactionID != event.TransactionID || got.UserID != userID {
		t.Errorf("unexpected event: %+v", got)
	}

	cancel()
	waitClosed(t, events)
}

func TestChannelName(t *testing.T) {
	userID := uuid.MustParse("7f1c2a9e-2f1d-4c55-9a7e-0d6f3c1b2a10")
	if got := ChannelName(userID); got != "transactions:7f1c2a9e-2f1d-4c55-9a7e-0d6f3c1b2a10" {
		t.Errorf("unexpected channel name %s", got)
	}
}

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *recordingChannel) Close() error { return nil }

func TestAMQPPublisher_Publish(t *testing.T) {
	channel := &recordingChannel{}
	publisher := &AMQPPublisher{channel: channel, exchangeName: "transactions"}

	event := entity.NewTransactionEvent(entity.TransactionEventDeleted, uuid.New(), uuid.New())
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if channel.exchange != "transactions" || channel.key != "transaction.deleted" {
		t.Errorf("unexpected destination %s/%s", channel.exchange, channel.key)
	}
	if channel.msg.DeliveryMode != amqp091.Persistent || channel.msg.ContentType != "application/json" {
		t.Errorf("expected persistent JSON message, got %+v", channel.msg)
	}

	var decoded entity.TransactionEvent
	if err := json.Unmarshal(channel.msg.Body, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded.TransactionID != event.TransactionID {
		t.Errorf("expected %s, got %s", event.TransactionID, decoded.TransactionID)
	}

	channel.err = errors.New("channel closed")
	if err := publisher.Publish(context.Background(), event); err == nil {
		t.Error("expected publish error")
	}
}

type failingPublisher struct{ err error }

func (p failingPublisher) Publish(context.Context, entity.TransactionEvent) error { return p.err }

func TestMultiPublisher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := NewBroker(0)
	userID := uuid.New()
	events, _ := broker.Subscribe(ctx, userID)

	boom := errors.New("boom")
	multi := NewMultiPublisher(failingPublisher{err: boom}, nil, broker)

	err := multi.Publish(ctx, entity.NewTransactionEvent(entity.TransactionEventCreated, userID, uuid.New()))
	if !errors.Is(err, boom) {
		t.Errorf("expected joined error to contain boom, got %v", err)
	}

	receive(t, events)
}
