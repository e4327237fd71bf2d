package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore/memory"
)

func newReservation(t *testing.T, id uuid.UUID, now time.Time) (reservation.Reservation, domain.Event) {
	t.Helper()

	period, err := reservation.NewPeriod(now.AddDate(0, 0, 1), now.AddDate(0, 0, 4), now)
	require.NoError(t, err)
	price, err := domain.NewMoney(decimal.NewFromInt(180), decimal.NewFromInt(34), "EUR")
	require.NoError(t, err)

	r, ev, err := reservation.Create(id, uuid.New(), uuid.New(), period, "BER", "HAM", price, now)
	require.NoError(t, err)
	return r, ev
}

func TestReservationsRepo(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("save then load round-trips the aggregate", func(t *testing.T) {
		store := memory.NewStore(16)
		t.Cleanup(func() { _ = store.Close() })
		repo := NewReservationsRepo(store)

		id := uuid.New()
		created, ev := newReservation(t, id, now)

		version, err := repo.Save(ctx, id, eventstore.NoStream, ev)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)

		loaded, loadedVersion, err := repo.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), loadedVersion)
		assert.Equal(t, created, loaded)
	})

	t.Run("load of unknown id reports not found", func(t *testing.T) {
		store := memory.NewStore(16)
		t.Cleanup(func() { _ = store.Close() })
		repo := NewReservationsRepo(store)

		_, _, err := repo.Load(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("stale version surfaces a conflict", func(t *testing.T) {
		store := memory.NewStore(16)
		t.Cleanup(func() { _ = store.Close() })
		repo := NewReservationsRepo(store)

		id := uuid.New()
		r, ev := newReservation(t, id, now)
		_, err := repo.Save(ctx, id, eventstore.NoStream, ev)
		require.NoError(t, err)

		_, confirmEv, err := r.Confirm(now)
		require.NoError(t, err)
		_, err = repo.Save(ctx, id, 1, confirmEv)
		require.NoError(t, err)

		// A second writer that loaded at version 1 loses.
		_, cancelEv, err := r.Cancel("late", now)
		require.NoError(t, err)
		_, err = repo.Save(ctx, id, 1, cancelEv)
		require.ErrorIs(t, err, eventstore.ErrConflict)
	})

	t.Run("nil events are dropped and empty saves skip the store", func(t *testing.T) {
		store := memory.NewStore(16)
		t.Cleanup(func() { _ = store.Close() })
		repo := NewReservationsRepo(store)

		id := uuid.New()
		_, ev := newReservation(t, id, now)
		_, err := repo.Save(ctx, id, eventstore.NoStream, ev)
		require.NoError(t, err)

		// A no-op command emitted nothing; saving must not touch the
		// stream or trip the version check on the next real save.
		version, err := repo.Save(ctx, id, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)

		loaded, _, err := repo.Load(ctx, id)
		require.NoError(t, err)
		_, confirmEv, err := loaded.Confirm(now)
		require.NoError(t, err)
		version, err = repo.Save(ctx, id, 1, confirmEv)
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)
	})

	t.Run("multi-event save keeps order", func(t *testing.T) {
		store := memory.NewStore(16)
		t.Cleanup(func() { _ = store.Close() })
		repo := NewReservationsRepo(store)

		id := uuid.New()
		r, created := newReservation(t, id, now)
		confirmed, confirmEv, err := r.Confirm(now)
		require.NoError(t, err)

		_, err = repo.Save(ctx, id, eventstore.NoStream, created, confirmEv)
		require.NoError(t, err)

		loaded, version, err := repo.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)
		assert.Equal(t, confirmed, loaded)
	})
}

func TestCustomersRepoNotFound(t *testing.T) {
	store := memory.NewStore(16)
	t.Cleanup(func() { _ = store.Close() })
	repo := NewCustomersRepo(store)

	_, _, err := repo.Load(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
