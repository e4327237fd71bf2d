package reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

// Repo is the aggregate repository the command handlers drive.
type Repo interface {
	Load(ctx context.Context, id uuid.UUID) (reservation.Reservation, int64, error)
	Save(ctx context.Context, id uuid.UUID, expectedVersion int64, events ...domain.Event) (int64, error)
}

// VehicleAvailability answers the cross-aggregate overlap check that
// the aggregate itself cannot perform.
type VehicleAvailability interface {
	IsVehicleAvailable(ctx context.Context, vehicleID uuid.UUID, period reservation.Period) (bool, error)
}

type CreateReservationReq struct {
	VehicleID       uuid.UUID
	CustomerID      uuid.UUID
	PickupDate      time.Time
	ReturnDate      time.Time
	PickupLocation  string
	DropoffLocation string
	Price           domain.Money
}

type CreateReservationUsecase struct {
	repo         Repo
	availability VehicleAvailability
	logger       zerolog.Logger

	now func() time.Time
}

func NewCreateReservationUsecase(repo Repo, availability VehicleAvailability, logger zerolog.Logger) *CreateReservationUsecase {
	return &CreateReservationUsecase{
		repo:         repo,
		availability: availability,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateReservation validates the booking, checks the vehicle for
// overlapping reservations and persists the new stream. The new
// reservation id is time-ordered.
func (u *CreateReservationUsecase) CreateReservation(ctx context.Context, req CreateReservationReq) (uuid.UUID, error) {
	now := u.now()

	period, err := reservation.NewPeriod(req.PickupDate, req.ReturnDate, now)
	if err != nil {
		return uuid.Nil, err
	}

	available, err := u.availability.IsVehicleAvailable(ctx, req.VehicleID, period)
	if err != nil {
		return uuid.Nil, fmt.Errorf("vehicle availability check: %w", err)
	}
	if !available {
		return uuid.Nil, domain.Validationf("vehicle %s is not available for the requested period", req.VehicleID)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate reservation id: %w", err)
	}

	_, ev, err := reservation.Create(
		id, req.VehicleID, req.CustomerID,
		period, req.PickupLocation, req.DropoffLocation,
		req.Price, now,
	)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := u.repo.Save(ctx, id, eventstore.NoStream, ev); err != nil {
		return uuid.Nil, fmt.Errorf("save reservation %s: %w", id, err)
	}

	u.logger.Info().
		Str("reservation_id", id.String()).
		Str("vehicle_id", req.VehicleID.String()).
		Msg("reservation created")
	return id, nil
}
