package eventstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
)

func TestCodecRoundTrip(t *testing.T) {
	at := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("reservation created", func(t *testing.T) {
		price, err := domain.NewMoney(decimal.NewFromInt(150), decimal.NewFromFloat(28.50), "EUR")
		require.NoError(t, err)

		original := reservation.Created{
			ReservationID: uuid.New(),
			VehicleID:     uuid.New(),
			CustomerID:    uuid.New(),
			Period: reservation.Period{
				PickupDate: at.AddDate(0, 0, 1),
				ReturnDate: at.AddDate(0, 0, 5),
			},
			PickupLocation:  "BER",
			DropoffLocation: "MUC",
			Price:           price,
			At:              at,
		}

		data, err := MarshalEvent(original)
		require.NoError(t, err)

		decoded, err := UnmarshalEvent(original.EventName(), data)
		require.NoError(t, err)

		got, ok := decoded.(reservation.Created)
		require.True(t, ok)
		assert.Equal(t, original.ReservationID, got.ReservationID)
		assert.True(t, original.Price.Equal(got.Price))
		assert.True(t, original.At.Equal(got.At))
	})

	t.Run("customer status changed", func(t *testing.T) {
		original := customer.StatusChanged{
			CustomerID: uuid.New(),
			Status:     customer.StatusSuspended,
			Reason:     "unpaid invoices",
			At:         at,
		}

		data, err := MarshalEvent(original)
		require.NoError(t, err)

		decoded, err := UnmarshalEvent(original.EventName(), data)
		require.NoError(t, err)
		assert.Equal(t, original.CustomerID, decoded.(customer.StatusChanged).CustomerID)
		assert.Equal(t, customer.StatusSuspended, decoded.(customer.StatusChanged).Status)
	})
}

func TestUnmarshalUnknownEvent(t *testing.T) {
	_, err := UnmarshalEvent("reservation.towed", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event name")
}

func TestUnmarshalMalformedPayload(t *testing.T) {
	_, err := UnmarshalEvent("reservation.confirmed", []byte(`{broken`))
	require.Error(t, err)
}
