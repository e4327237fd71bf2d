package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore/memory"
	"github.com/smartsolutionslab/orange-car-rental/internal/repository"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type stubAvailability struct {
	available bool
	err       error
}

func (s stubAvailability) IsVehicleAvailable(ctx context.Context, vehicleID uuid.UUID, period reservation.Period) (bool, error) {
	return s.available, s.err
}

func testCreateReq(t *testing.T) CreateReservationReq {
	t.Helper()
	price, err := domain.NewMoney(decimal.NewFromInt(250), decimal.NewFromFloat(47.50), "EUR")
	require.NoError(t, err)
	return CreateReservationReq{
		VehicleID:       uuid.New(),
		CustomerID:      uuid.New(),
		PickupDate:      testNow.AddDate(0, 0, 2),
		ReturnDate:      testNow.AddDate(0, 0, 6),
		PickupLocation:  "BER",
		DropoffLocation: "MUC",
		Price:           price,
	}
}

func newCreateUsecase(t *testing.T, availability VehicleAvailability) (*CreateReservationUsecase, *repository.ReservationsRepo) {
	t.Helper()
	store := memory.NewStore(16)
	t.Cleanup(func() { _ = store.Close() })

	repo := repository.NewReservationsRepo(store)
	u := NewCreateReservationUsecase(repo, availability, zerolog.Nop())
	u.now = func() time.Time { return testNow }
	return u, repo
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and persists a pending reservation", func(t *testing.T) {
		u, repo := newCreateUsecase(t, stubAvailability{available: true})

		id, err := u.CreateReservation(ctx, testCreateReq(t))
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		loaded, version, err := repo.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)
		assert.Equal(t, reservation.StatusPending, loaded.Status)
	})

	t.Run("vehicle unavailable is a validation failure", func(t *testing.T) {
		u, _ := newCreateUsecase(t, stubAvailability{available: false})

		_, err := u.CreateReservation(ctx, testCreateReq(t))
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid period never reaches the availability check", func(t *testing.T) {
		u, _ := newCreateUsecase(t, stubAvailability{err: assert.AnError})

		req := testCreateReq(t)
		req.ReturnDate = req.PickupDate
		_, err := u.CreateReservation(ctx, req)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("availability check failure propagates", func(t *testing.T) {
		u, _ := newCreateUsecase(t, stubAvailability{err: assert.AnError})

		_, err := u.CreateReservation(ctx, testCreateReq(t))
		require.ErrorIs(t, err, assert.AnError)
	})
}
