package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

const reservationStreamType = "Reservation"

// ReservationsRepo loads reservation aggregates by folding their
// streams and saves command results with an expected-version check.
type ReservationsRepo struct {
	store eventstore.Store
}

func NewReservationsRepo(store eventstore.Store) *ReservationsRepo {
	return &ReservationsRepo{store: store}
}

// Load rebuilds the reservation and returns the version it was loaded
// at. A stream with no creation event reports domain.ErrNotFound.
func (r *ReservationsRepo) Load(ctx context.Context, id uuid.UUID) (reservation.Reservation, int64, error) {
	streamID := eventstore.StreamID(reservationStreamType, id)

	envelopes, err := r.store.ReadStream(ctx, streamID)
	if err != nil {
		return reservation.Reservation{}, 0, fmt.Errorf("load reservation %s: %w", id, err)
	}
	if len(envelopes) == 0 {
		return reservation.Reservation{}, 0, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}

	events := make([]domain.Event, len(envelopes))
	for i, env := range envelopes {
		events[i] = env.Event
	}

	res, err := reservation.FromEvents(events)
	if err != nil {
		return reservation.Reservation{}, 0, fmt.Errorf("load reservation %s: %w", id, err)
	}
	return res, envelopes[len(envelopes)-1].Sequence, nil
}

// Save appends the events a command emitted at the version the
// aggregate was loaded at. Commands that emitted nothing are a no-op.
// A concurrent writer surfaces as eventstore.ErrConflict; retrying is
// the command layer's decision, not the repository's.
func (r *ReservationsRepo) Save(ctx context.Context, id uuid.UUID, expectedVersion int64, events ...domain.Event) (int64, error) {
	events = compact(events)
	if len(events) == 0 {
		return expectedVersion, nil
	}
	streamID := eventstore.StreamID(reservationStreamType, id)
	return r.store.AppendToStream(ctx, streamID, expectedVersion, events)
}

// compact drops nil events so callers can pass a command's event
// result straight through, no-op or not.
func compact(events []domain.Event) []domain.Event {
	out := events[:0]
	for _, ev := range events {
		if ev != nil {
			out = append(out, ev)
		}
	}
	return out
}
