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
)

// GuestBookingAttempt is the durable saga-state record for one guest
// booking, keyed by the caller's idempotency key. It makes a partial
// failure visible and lets a retry resume instead of re-running
// completed steps (re-registering the customer in particular).
type GuestBookingAttempt struct {
	IdempotencyKey string              `db:"idempotency_key"`
	CustomerID     uuid.NullUUID       `db:"customer_id"`
	ReservationID  uuid.NullUUID       `db:"reservation_id"`
	Step           string              `db:"step"`
	PriceNet       decimal.NullDecimal `db:"price_net"`
	PriceVAT       decimal.NullDecimal `db:"price_vat"`
	PriceCurrency  sql.NullString      `db:"price_currency"`
	LastError      sql.NullString      `db:"last_error"`
	CreatedAt      time.Time           `db:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at"`
}

// SetPrice records the calculated price so a replayed completed
// booking returns the same response as the original.
func (a *GuestBookingAttempt) SetPrice(price domain.Money) {
	a.PriceNet = decimal.NullDecimal{Decimal: price.Net, Valid: true}
	a.PriceVAT = decimal.NullDecimal{Decimal: price.VAT, Valid: true}
	a.PriceCurrency = sql.NullString{String: price.Currency, Valid: true}
}

// Price returns the recorded price, or a zero Money when the attempt
// never reached the pricing step.
func (a *GuestBookingAttempt) Price() domain.Money {
	if !a.PriceNet.Valid {
		return domain.Money{}
	}
	return domain.Money{Net: a.PriceNet.Decimal, VAT: a.PriceVAT.Decimal, Currency: a.PriceCurrency.String}
}

type GuestBookingsRepo struct {
	db *sqlx.DB
}

func NewGuestBookingsRepo(db *sqlx.DB) *GuestBookingsRepo {
	return &GuestBookingsRepo{db: db}
}

// Get returns nil when no attempt with the key exists.
func (r *GuestBookingsRepo) Get(ctx context.Context, idempotencyKey string) (*GuestBookingAttempt, error) {
	var attempt GuestBookingAttempt
	err := r.db.GetContext(ctx, &attempt, `
		SELECT * FROM guest_booking_attempts WHERE idempotency_key = $1`, idempotencyKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guest booking attempt: %w", err)
	}
	return &attempt, nil
}

// Upsert inserts the attempt or replaces its progress fields.
func (r *GuestBookingsRepo) Upsert(ctx context.Context, attempt GuestBookingAttempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO guest_booking_attempts (
			idempotency_key, customer_id, reservation_id, step,
			price_net, price_vat, price_currency, last_error, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (idempotency_key) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			reservation_id = EXCLUDED.reservation_id,
			step = EXCLUDED.step,
			price_net = EXCLUDED.price_net,
			price_vat = EXCLUDED.price_vat,
			price_currency = EXCLUDED.price_currency,
			last_error = EXCLUDED.last_error,
			updated_at = NOW()`,
		attempt.IdempotencyKey, attempt.CustomerID, attempt.ReservationID, attempt.Step,
		attempt.PriceNet, attempt.PriceVAT, attempt.PriceCurrency, attempt.LastError,
	)
	if err != nil {
		return fmt.Errorf("upsert guest booking attempt: %w", err)
	}
	return nil
}
