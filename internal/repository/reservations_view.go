package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
)

// ReservationRow is the query-side copy of a reservation. It is
// derived, eventually consistent and never the source of truth.
type ReservationRow struct {
	ReservationID      uuid.UUID       `db:"reservation_id"`
	VehicleID          uuid.UUID       `db:"vehicle_id"`
	CustomerID         uuid.UUID       `db:"customer_id"`
	PickupDate         time.Time       `db:"pickup_date"`
	ReturnDate         time.Time       `db:"return_date"`
	PickupLocation     string          `db:"pickup_location"`
	DropoffLocation    string          `db:"dropoff_location"`
	PriceNet           decimal.Decimal `db:"price_net"`
	PriceVAT           decimal.Decimal `db:"price_vat"`
	Currency           string          `db:"currency"`
	Status             string          `db:"status"`
	CancellationReason sql.NullString  `db:"cancellation_reason"`
	CreatedAt          time.Time       `db:"created_at"`
	ConfirmedAt        sql.NullTime    `db:"confirmed_at"`
	CancelledAt        sql.NullTime    `db:"cancelled_at"`
	CompletedAt        sql.NullTime    `db:"completed_at"`
}

type ReservationsViewRepo struct {
	db *sqlx.DB
}

func NewReservationsViewRepo(db *sqlx.DB) *ReservationsViewRepo {
	return &ReservationsViewRepo{db: db}
}

// InsertCreated is idempotent: a Created event redelivered for an
// existing row is ignored.
func (r *ReservationsViewRepo) InsertCreated(ctx context.Context, ev reservation.Created) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reservations_view (
			reservation_id, vehicle_id, customer_id,
			pickup_date, return_date, pickup_location, dropoff_location,
			price_net, price_vat, currency, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (reservation_id) DO NOTHING`,
		ev.ReservationID, ev.VehicleID, ev.CustomerID,
		ev.Period.PickupDate, ev.Period.ReturnDate, ev.PickupLocation, ev.DropoffLocation,
		ev.Price.Net, ev.Price.VAT, ev.Price.Currency, string(reservation.StatusPending), ev.At,
	)
	if err != nil {
		return fmt.Errorf("insert reservation view %s: %w", ev.ReservationID, err)
	}
	return nil
}

func (r *ReservationsViewRepo) MarkConfirmed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(ctx, id, `
		UPDATE reservations_view SET status = $2, confirmed_at = $3 WHERE reservation_id = $1`,
		string(reservation.StatusConfirmed), at)
}

func (r *ReservationsViewRepo) MarkCancelled(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	return r.update(ctx, id, `
		UPDATE reservations_view SET status = $2, cancellation_reason = $3, cancelled_at = $4 WHERE reservation_id = $1`,
		string(reservation.StatusCancelled), reason, at)
}

func (r *ReservationsViewRepo) MarkActive(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, id, `
		UPDATE reservations_view SET status = $2 WHERE reservation_id = $1`,
		string(reservation.StatusActive))
}

func (r *ReservationsViewRepo) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(ctx, id, `
		UPDATE reservations_view SET status = $2, completed_at = $3 WHERE reservation_id = $1`,
		string(reservation.StatusCompleted), at)
}

func (r *ReservationsViewRepo) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, id, `
		UPDATE reservations_view SET status = $2 WHERE reservation_id = $1`,
		string(reservation.StatusNoShow))
}

// update tolerates a missing row: an update event observed before the
// Created projection is acceptable staleness, not an error.
func (r *ReservationsViewRepo) update(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	allArgs := append([]any{id}, args...)
	if _, err := r.db.ExecContext(ctx, query, allArgs...); err != nil {
		return fmt.Errorf("update reservation view %s: %w", id, err)
	}
	return nil
}

func (r *ReservationsViewRepo) GetByID(ctx context.Context, id uuid.UUID) (*ReservationRow, error) {
	var row ReservationRow
	err := r.db.GetContext(ctx, &row, `
		SELECT * FROM reservations_view WHERE reservation_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reservation view %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get reservation view %s: %w", id, err)
	}
	return &row, nil
}

// IsVehicleAvailable reports whether the vehicle has no
// pending/confirmed/active reservation overlapping the period.
// Boundary days overlap, matching reservation.Period.Overlaps.
func (r *ReservationsViewRepo) IsVehicleAvailable(ctx context.Context, vehicleID uuid.UUID, period reservation.Period) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM reservations_view
		WHERE vehicle_id = $1
		  AND status IN ($2, $3, $4)
		  AND pickup_date <= $5
		  AND return_date >= $6`,
		vehicleID,
		string(reservation.StatusPending), string(reservation.StatusConfirmed), string(reservation.StatusActive),
		period.ReturnDate, period.PickupDate,
	)
	if err != nil {
		return false, fmt.Errorf("vehicle availability %s: %w", vehicleID, err)
	}
	return count == 0, nil
}
