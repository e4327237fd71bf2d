package reservation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

func testPrice(t *testing.T) domain.Money {
	t.Helper()
	price, err := domain.NewMoney(decimal.NewFromInt(200), decimal.NewFromInt(38), "EUR")
	require.NoError(t, err)
	return price
}

func testPeriod(t *testing.T) Period {
	t.Helper()
	p, err := NewPeriod(day(1), day(4), testNow)
	require.NoError(t, err)
	return p
}

func newPendingReservation(t *testing.T) (Reservation, Created) {
	t.Helper()
	r, ev, err := Create(
		uuid.New(), uuid.New(), uuid.New(),
		testPeriod(t), "BER", "MUC",
		testPrice(t), testNow,
	)
	require.NoError(t, err)
	return r, ev.(Created)
}

func TestCreate(t *testing.T) {
	t.Run("valid reservation starts pending", func(t *testing.T) {
		r, ev := newPendingReservation(t)
		assert.Equal(t, StatusPending, r.Status)
		assert.Equal(t, r.ID, ev.ReservationID)
		assert.Equal(t, "reservation.created", ev.EventName())
		assert.Equal(t, testNow, r.CreatedAt)
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		_, _, err := Create(uuid.Nil, uuid.New(), uuid.New(), testPeriod(t), "BER", "MUC", testPrice(t), testNow)
		require.ErrorIs(t, err, domain.ErrValidation)

		_, _, err = Create(uuid.New(), uuid.Nil, uuid.New(), testPeriod(t), "BER", "MUC", testPrice(t), testNow)
		require.ErrorIs(t, err, domain.ErrValidation)

		_, _, err = Create(uuid.New(), uuid.New(), uuid.Nil, testPeriod(t), "BER", "MUC", testPrice(t), testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects empty period", func(t *testing.T) {
		_, _, err := Create(uuid.New(), uuid.New(), uuid.New(), Period{}, "BER", "MUC", testPrice(t), testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects empty locations", func(t *testing.T) {
		_, _, err := Create(uuid.New(), uuid.New(), uuid.New(), testPeriod(t), "", "MUC", testPrice(t), testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects empty price", func(t *testing.T) {
		_, _, err := Create(uuid.New(), uuid.New(), uuid.New(), testPeriod(t), "BER", "MUC", domain.Money{}, testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestReservationLifecycle(t *testing.T) {
	t.Run("pending to confirmed to active to completed", func(t *testing.T) {
		r, _ := newPendingReservation(t)

		r, ev, err := r.Confirm(testNow)
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, StatusConfirmed, r.Status)

		r, _, err = r.MarkAsActive(testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, r.Status)

		r, _, err = r.Complete(testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, r.Status)
		assert.Equal(t, testNow, r.CompletedAt)
	})

	t.Run("cancel from pending", func(t *testing.T) {
		r, _ := newPendingReservation(t)

		r, ev, err := r.Cancel("change of plans", testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, r.Status)
		assert.Equal(t, "change of plans", r.CancellationReason)
		assert.Equal(t, "change of plans", ev.(Cancelled).Reason)
	})

	t.Run("cancel from confirmed", func(t *testing.T) {
		r, _ := newPendingReservation(t)
		r, _, err := r.Confirm(testNow)
		require.NoError(t, err)

		r, _, err = r.Cancel("vehicle damaged", testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, r.Status)
	})

	t.Run("double cancel fails", func(t *testing.T) {
		r, _ := newPendingReservation(t)
		r, _, err := r.Cancel("first", testNow)
		require.NoError(t, err)

		_, ev, err := r.Cancel("second", testNow)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Nil(t, ev)
	})

	t.Run("no-show only from pending", func(t *testing.T) {
		r, _ := newPendingReservation(t)

		marked, _, err := r.MarkAsNoShow(testNow)
		require.NoError(t, err)
		assert.Equal(t, StatusNoShow, marked.Status)

		confirmed, _, err := r.Confirm(testNow)
		require.NoError(t, err)
		_, _, err = confirmed.MarkAsNoShow(testNow)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("invalid transitions fail", func(t *testing.T) {
		r, _ := newPendingReservation(t)

		_, _, err := r.MarkAsActive(testNow)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)

		_, _, err = r.Complete(testNow)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)

		_, _, err = r.Confirm(testNow)
		require.NoError(t, err)
	})

	t.Run("cancel after completion fails", func(t *testing.T) {
		r, _ := newPendingReservation(t)
		r, _, err := r.Confirm(testNow)
		require.NoError(t, err)
		r, _, err = r.MarkAsActive(testNow)
		require.NoError(t, err)
		r, _, err = r.Complete(testNow)
		require.NoError(t, err)

		_, _, err = r.Cancel("too late", testNow)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestFromEvents(t *testing.T) {
	t.Run("folding the stream rebuilds the snapshot", func(t *testing.T) {
		r, created := newPendingReservation(t)

		r, confirmEv, err := r.Confirm(testNow.Add(time.Hour))
		require.NoError(t, err)
		r, activateEv, err := r.MarkAsActive(testNow.Add(2 * time.Hour))
		require.NoError(t, err)

		rebuilt, err := FromEvents([]domain.Event{created, confirmEv, activateEv})
		require.NoError(t, err)
		assert.Equal(t, r, rebuilt)

		// Folding again yields the identical snapshot.
		again, err := FromEvents([]domain.Event{created, confirmEv, activateEv})
		require.NoError(t, err)
		assert.Equal(t, rebuilt, again)
	})

	t.Run("empty stream yields zero snapshot", func(t *testing.T) {
		r, err := FromEvents(nil)
		require.NoError(t, err)
		assert.Equal(t, Reservation{}, r)
	})

	t.Run("unexpected event fails the fold", func(t *testing.T) {
		_, err := FromEvents([]domain.Event{unknownEvent{}})
		require.Error(t, err)
	})
}

type unknownEvent struct{}

func (unknownEvent) AggregateID() string { return "x" }
func (unknownEvent) EventName() string   { return "unknown" }
