package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

const customerStreamType = "Customer"

type CustomersRepo struct {
	store eventstore.Store
}

func NewCustomersRepo(store eventstore.Store) *CustomersRepo {
	return &CustomersRepo{store: store}
}

func (r *CustomersRepo) Load(ctx context.Context, id uuid.UUID) (customer.Customer, int64, error) {
	streamID := eventstore.StreamID(customerStreamType, id)

	envelopes, err := r.store.ReadStream(ctx, streamID)
	if err != nil {
		return customer.Customer{}, 0, fmt.Errorf("load customer %s: %w", id, err)
	}
	if len(envelopes) == 0 {
		return customer.Customer{}, 0, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}

	events := make([]domain.Event, len(envelopes))
	for i, env := range envelopes {
		events[i] = env.Event
	}

	c, err := customer.FromEvents(events)
	if err != nil {
		return customer.Customer{}, 0, fmt.Errorf("load customer %s: %w", id, err)
	}
	return c, envelopes[len(envelopes)-1].Sequence, nil
}

func (r *CustomersRepo) Save(ctx context.Context, id uuid.UUID, expectedVersion int64, events ...domain.Event) (int64, error) {
	events = compact(events)
	if len(events) == 0 {
		return expectedVersion, nil
	}
	streamID := eventstore.StreamID(customerStreamType, id)
	return r.store.AppendToStream(ctx, streamID, expectedVersion, events)
}
