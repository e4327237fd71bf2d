package customers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore/memory"
	"github.com/smartsolutionslab/orange-car-rental/internal/repository"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func testRegisterReq() RegisterCustomerReq {
	return RegisterCustomerReq{
		Name:        "Alex Schmidt",
		Email:       "alex@example.com",
		Phone:       "+49 30 1234567",
		DateOfBirth: testNow.AddDate(-30, 0, 0),
		Address: customer.Address{
			Street:     "Hauptstrasse 1",
			City:       "Berlin",
			PostalCode: "10115",
			Country:    "DE",
		},
		License: customer.DriversLicense{
			Number:         "B123456789",
			IssuingCountry: "DE",
			IssuedAt:       testNow.AddDate(-5, 0, 0),
			ExpiresAt:      testNow.AddDate(3, 0, 0),
		},
	}
}

func setup(t *testing.T) (*RegisterCustomerUsecase, *UpdateCustomerUsecase, *repository.CustomersRepo) {
	t.Helper()
	store := memory.NewStore(16)
	t.Cleanup(func() { _ = store.Close() })

	repo := repository.NewCustomersRepo(store)

	register := NewRegisterCustomerUsecase(repo, zerolog.Nop())
	register.now = func() time.Time { return testNow }
	update := NewUpdateCustomerUsecase(repo, zerolog.Nop())
	update.now = func() time.Time { return testNow }
	return register, update, repo
}

func TestRegisterCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and persists", func(t *testing.T) {
		register, _, repo := setup(t)

		id, err := register.RegisterCustomer(ctx, testRegisterReq())
		require.NoError(t, err)

		loaded, version, err := repo.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)
		assert.Equal(t, customer.StatusActive, loaded.Status)
		assert.Equal(t, "alex@example.com", loaded.Email)
	})

	t.Run("underage registration fails without touching the store", func(t *testing.T) {
		register, _, _ := setup(t)

		req := testRegisterReq()
		req.DateOfBirth = testNow.AddDate(-17, 0, 0)
		_, err := register.RegisterCustomer(ctx, req)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("email change appends an event", func(t *testing.T) {
		register, update, repo := setup(t)
		id, err := register.RegisterCustomer(ctx, testRegisterReq())
		require.NoError(t, err)

		require.NoError(t, update.UpdateCustomerEmail(ctx, id, "new@example.com"))

		loaded, version, err := repo.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)
		assert.Equal(t, "new@example.com", loaded.Email)
	})

	t.Run("unchanged email leaves the stream alone", func(t *testing.T) {
		register, update, repo := setup(t)
		id, err := register.RegisterCustomer(ctx, testRegisterReq())
		require.NoError(t, err)

		require.NoError(t, update.UpdateCustomerEmail(ctx, id, "alex@example.com"))

		_, version, err := repo.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)
	})

	t.Run("status change requires a reason", func(t *testing.T) {
		register, update, _ := setup(t)
		id, err := register.RegisterCustomer(ctx, testRegisterReq())
		require.NoError(t, err)

		err = update.ChangeCustomerStatus(ctx, id, customer.StatusBlocked, "")
		require.ErrorIs(t, err, domain.ErrValidation)

		require.NoError(t, update.ChangeCustomerStatus(ctx, id, customer.StatusBlocked, "fraud"))
	})

	t.Run("update of unknown customer reports not found", func(t *testing.T) {
		_, update, _ := setup(t)

		err := update.UpdateCustomerEmail(ctx, uuid.New(), "ghost@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
