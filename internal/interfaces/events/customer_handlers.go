package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
)

func (h *Handler) CustomerRegisteredHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"customer_registered_projection",
		func(ctx context.Context, payload *customer.Registered) error {
			h.logger.Debug().Str("customer_id", payload.CustomerID.String()).Msg("projecting customer registered")
			return h.customers.InsertRegistered(ctx, *payload)
		},
	)
}

func (h *Handler) CustomerProfileUpdatedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"customer_profile_updated_projection",
		func(ctx context.Context, payload *customer.ProfileUpdated) error {
			return h.customers.UpdateProfile(ctx, *payload)
		},
	)
}

func (h *Handler) CustomerLicenseUpdatedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"customer_license_updated_projection",
		func(ctx context.Context, payload *customer.LicenseUpdated) error {
			return h.customers.UpdateLicense(ctx, *payload)
		},
	)
}

func (h *Handler) CustomerEmailChangedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"customer_email_changed_projection",
		func(ctx context.Context, payload *customer.EmailChanged) error {
			return h.customers.UpdateEmail(ctx, *payload)
		},
	)
}

func (h *Handler) CustomerStatusChangedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"customer_status_changed_projection",
		func(ctx context.Context, payload *customer.StatusChanged) error {
			return h.customers.UpdateStatus(ctx, *payload)
		},
	)
}

// RegisterHandlers wires every projection handler into the processor.
// The event sets are closed; a new event type added to a domain
// package shows up here or the projection is knowingly incomplete.
func RegisterHandlers(processor *cqrs.EventProcessor, h *Handler) error {
	return processor.AddHandlers(
		h.ReservationCreatedHandler(),
		h.ReservationConfirmedHandler(),
		h.ReservationCancelledHandler(),
		h.ReservationActivatedHandler(),
		h.ReservationCompletedHandler(),
		h.ReservationNoShowHandler(),
		h.CustomerRegisteredHandler(),
		h.CustomerProfileUpdatedHandler(),
		h.CustomerLicenseUpdatedHandler(),
		h.CustomerEmailChangedHandler(),
		h.CustomerStatusChangedHandler(),
	)
}
