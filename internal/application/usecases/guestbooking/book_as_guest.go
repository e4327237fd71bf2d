package guestbooking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/customers"
	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/reservations"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/idempotency"
	"github.com/smartsolutionslab/orange-car-rental/internal/repository"
)

// Saga step names, surfaced in step errors and persisted in the
// attempt record.
const (
	StepRegisterCustomer  = "register_customer"
	StepCalculatePrice    = "calculate_price"
	StepCreateReservation = "create_reservation"
	StepCompleted         = "completed"
)

// StepError reports which saga step failed and why. The orchestrator
// never masks the underlying cause as a different error kind.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("guest booking step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// CustomerRegistrar registers the guest; in production this is the
// local register-customer usecase, but the saga treats it as an
// external collaborator.
type CustomerRegistrar interface {
	RegisterCustomer(ctx context.Context, req customers.RegisterCustomerReq) (uuid.UUID, error)
}

// PriceCalculator is the external pricing collaborator.
type PriceCalculator interface {
	CalculatePrice(ctx context.Context, categoryCode string, pickupDate, returnDate time.Time, locationCode string) (domain.Money, error)
}

// ReservationCreator creates and persists the reservation aggregate.
type ReservationCreator interface {
	CreateReservation(ctx context.Context, req reservations.CreateReservationReq) (uuid.UUID, error)
}

// AttemptsRepo is the durable saga-state store.
type AttemptsRepo interface {
	Get(ctx context.Context, idempotencyKey string) (*repository.GuestBookingAttempt, error)
	Upsert(ctx context.Context, attempt repository.GuestBookingAttempt) error
}

type BookAsGuestReq struct {
	Customer        customers.RegisterCustomerReq
	VehicleID       uuid.UUID
	CategoryCode    string
	PickupDate      time.Time
	ReturnDate      time.Time
	PickupLocation  string
	DropoffLocation string
}

type BookAsGuestRes struct {
	CustomerID    uuid.UUID
	ReservationID uuid.UUID
	Price         domain.Money
}

// BookAsGuestUsecase sequences customer registration, price
// calculation and reservation creation. The three steps span separate
// consistency boundaries with no shared transaction; a failure after
// registration leaves the customer registered and the attempt record
// marks how far the saga got. Retrying with the same idempotency key
// resumes from the recorded progress instead of re-registering.
type BookAsGuestUsecase struct {
	registrar CustomerRegistrar
	pricing   PriceCalculator
	creator   ReservationCreator
	attempts  AttemptsRepo
	logger    zerolog.Logger
}

func NewBookAsGuestUsecase(
	registrar CustomerRegistrar,
	pricing PriceCalculator,
	creator ReservationCreator,
	attempts AttemptsRepo,
	logger zerolog.Logger,
) *BookAsGuestUsecase {
	return &BookAsGuestUsecase{
		registrar: registrar,
		pricing:   pricing,
		creator:   creator,
		attempts:  attempts,
		logger:    logger,
	}
}

func (u *BookAsGuestUsecase) BookAsGuest(ctx context.Context, req BookAsGuestReq) (*BookAsGuestRes, error) {
	key := idempotency.GetKey(ctx)
	logger := u.logger.With().Str("idempotency_key", key).Logger()

	attempt, err := u.attempts.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load guest booking attempt: %w", err)
	}
	if attempt == nil {
		attempt = &repository.GuestBookingAttempt{
			IdempotencyKey: key,
			Step:           StepRegisterCustomer,
		}
		if err := u.attempts.Upsert(ctx, *attempt); err != nil {
			return nil, fmt.Errorf("record guest booking attempt: %w", err)
		}
	}
	if attempt.Step == StepCompleted {
		return &BookAsGuestRes{
			CustomerID:    attempt.CustomerID.UUID,
			ReservationID: attempt.ReservationID.UUID,
			Price:         attempt.Price(),
		}, nil
	}

	// Step 1: register the customer, unless a previous attempt with
	// this key already did.
	if !attempt.CustomerID.Valid {
		customerID, err := u.registrar.RegisterCustomer(ctx, req.Customer)
		if err != nil {
			return nil, u.fail(ctx, attempt, StepRegisterCustomer, err)
		}
		attempt.CustomerID = uuid.NullUUID{UUID: customerID, Valid: true}
		attempt.Step = StepCalculatePrice
		if err := u.attempts.Upsert(ctx, *attempt); err != nil {
			return nil, fmt.Errorf("record registered customer: %w", err)
		}
		logger.Info().Str("customer_id", customerID.String()).Msg("guest customer registered")
	}

	// Step 2: obtain the price from the pricing collaborator.
	price, err := u.pricing.CalculatePrice(ctx, req.CategoryCode, req.PickupDate, req.ReturnDate, req.PickupLocation)
	if err != nil {
		// No compensation: the registered customer stays. The attempt
		// record keeps the saga resumable.
		return nil, u.fail(ctx, attempt, StepCalculatePrice, err)
	}

	// Step 3: create the reservation with the new customer id and the
	// calculated price.
	reservationID, err := u.creator.CreateReservation(ctx, reservations.CreateReservationReq{
		VehicleID:       req.VehicleID,
		CustomerID:      attempt.CustomerID.UUID,
		PickupDate:      req.PickupDate,
		ReturnDate:      req.ReturnDate,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Price:           price,
	})
	if err != nil {
		return nil, u.fail(ctx, attempt, StepCreateReservation, err)
	}

	attempt.ReservationID = uuid.NullUUID{UUID: reservationID, Valid: true}
	attempt.Step = StepCompleted
	attempt.SetPrice(price)
	attempt.LastError = sql.NullString{}
	if err := u.attempts.Upsert(ctx, *attempt); err != nil {
		return nil, fmt.Errorf("record completed guest booking: %w", err)
	}

	logger.Info().
		Str("customer_id", attempt.CustomerID.UUID.String()).
		Str("reservation_id", reservationID.String()).
		Msg("guest booking completed")
	return &BookAsGuestRes{
		CustomerID:    attempt.CustomerID.UUID,
		ReservationID: reservationID,
		Price:         price,
	}, nil
}

func (u *BookAsGuestUsecase) fail(ctx context.Context, attempt *repository.GuestBookingAttempt, step string, cause error) error {
	attempt.Step = step
	attempt.LastError = sql.NullString{String: cause.Error(), Valid: true}
	if err := u.attempts.Upsert(ctx, *attempt); err != nil {
		u.logger.Error().Err(err).Msg("failed to record guest booking failure")
	}
	return &StepError{Step: step, Err: cause}
}
