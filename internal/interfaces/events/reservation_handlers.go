package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
)

func (h *Handler) ReservationCreatedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"reservation_created_projection",
		func(ctx context.Context, payload *reservation.Created) error {
			h.logger.Debug().Str("reservation_id", payload.ReservationID.String()).Msg("projecting reservation created")
			return h.reservations.InsertCreated(ctx, *payload)
		},
	)
}

func (h *Handler) ReservationConfirmedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"reservation_confirmed_projection",
		func(ctx context.Context, payload *reservation.Confirmed) error {
			return h.reservations.MarkConfirmed(ctx, payload.ReservationID, payload.At)
		},
	)
}

func (h *Handler) ReservationCancelledHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"reservation_cancelled_projection",
		func(ctx context.Context, payload *reservation.Cancelled) error {
			return h.reservations.MarkCancelled(ctx, payload.ReservationID, payload.Reason, payload.At)
		},
	)
}

func (h *Handler) ReservationActivatedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"reservation_activated_projection",
		func(ctx context.Context, payload *reservation.Activated) error {
			return h.reservations.MarkActive(ctx, payload.ReservationID)
		},
	)
}

func (h *Handler) ReservationCompletedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"reservation_completed_projection",
		func(ctx context.Context, payload *reservation.Completed) error {
			return h.reservations.MarkCompleted(ctx, payload.ReservationID, payload.At)
		},
	)
}

func (h *Handler) ReservationNoShowHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"reservation_no_show_projection",
		func(ctx context.Context, payload *reservation.MarkedNoShow) error {
			return h.reservations.MarkNoShow(ctx, payload.ReservationID)
		},
	)
}
