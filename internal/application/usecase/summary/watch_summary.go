package summary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
)

// WatchSummaryUseCase streams a fresh summary every time the user's
// transactions change.
type WatchSummaryUseCase struct {
	getSummary *GetSummaryUseCase
	subscriber adapter.TransactionEventSubscriber
}

// NewWatchSummaryUseCase creates a new WatchSummaryUseCase instance.
func NewWatchSummaryUseCase(getSummary *GetSummaryUseCase, subscriber adapter.TransactionEventSubscriber) *WatchSummaryUseCase {
	return &WatchSummaryUseCase{
		getSummary: getSummary,
		subscriber: subscriber,
	}
}

// Execute subscribes to the user's change events and returns a channel that
// first yields the current summary and then one recomputed summary per event.
// The channel is closed when ctx is done or the event stream ends.
func (uc *WatchSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (<-chan *GetSummaryOutput, error) {
	if err := transaction.ValidateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	events, err := uc.subscriber.Subscribe(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to transaction events: %w", err)
	}

	initial, err := uc.getSummary.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	out := make(chan *GetSummaryOutput, 1)
	out <- initial

	go func() {
		defer close(out)
		logger := slog.With("component", "summary_watch", "userID", input.UserID)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}

				next, err := uc.getSummary.Execute(ctx, input)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.Warn("Failed to recompute summary", "event", event.Kind, "error", err)
					continue
				}

				select {
				case out <- next:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
