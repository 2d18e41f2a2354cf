package events

import (
	"context"
	"errors"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// MultiPublisher fans each event out to several publishers.
type MultiPublisher struct {
	publishers []adapter.TransactionEventPublisher
}

// NewMultiPublisher creates a publisher over the non-nil publishers given.
func NewMultiPublisher(publishers ...adapter.TransactionEventPublisher) *MultiPublisher {
	m := &MultiPublisher{}
	for _, p := range publishers {
		if p != nil {
			m.publishers = append(m.publishers, p)
		}
	}
	return m
}

// Publish calls every publisher and joins their errors.
func (m *MultiPublisher) Publish(ctx context.Context, event entity.TransactionEvent) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
