package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
)

// ReservationsView is the query-side store the projector keeps in
// sync. Implementations must be idempotent under at-least-once
// delivery: a duplicate Created is ignored, an update for a row that
// does not exist yet is ignored.
type ReservationsView interface {
	InsertCreated(ctx context.Context, ev reservation.Created) error
	MarkConfirmed(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkCancelled(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
	MarkActive(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkNoShow(ctx context.Context, id uuid.UUID) error
}

type CustomersView interface {
	InsertRegistered(ctx context.Context, ev customer.Registered) error
	UpdateProfile(ctx context.Context, ev customer.ProfileUpdated) error
	UpdateLicense(ctx context.Context, ev customer.LicenseUpdated) error
	UpdateEmail(ctx context.Context, ev customer.EmailChanged) error
	UpdateStatus(ctx context.Context, ev customer.StatusChanged) error
}

// Handler holds the projector's dependencies. Projection never raises
// new domain events and never sits on the write path.
type Handler struct {
	reservations ReservationsView
	customers    CustomersView
	logger       zerolog.Logger
}

func NewHandler(reservations ReservationsView, customers CustomersView, logger zerolog.Logger) *Handler {
	return &Handler{
		reservations: reservations,
		customers:    customers,
		logger:       logger.With().Str("component", "projector").Logger(),
	}
}
