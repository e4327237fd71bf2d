package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitializeDBSchema creates the event store and query-side tables.
// The watermill outbox tables are initialized by the forwarder's
// SubscribeInitialize.
func InitializeDBSchema(db *sqlx.DB) error {
	_, err := db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS events (
	stream_id VARCHAR(255) NOT NULL,
	sequence_number BIGINT NOT NULL,
	event_id UUID NOT NULL,
	event_name VARCHAR(255) NOT NULL,
	payload JSONB NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	PRIMARY KEY (stream_id, sequence_number)
);`)
	if err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS reservations_view (
	reservation_id UUID PRIMARY KEY,
	vehicle_id UUID NOT NULL,
	customer_id UUID NOT NULL,
	pickup_date DATE NOT NULL,
	return_date DATE NOT NULL,
	pickup_location VARCHAR(16) NOT NULL,
	dropoff_location VARCHAR(16) NOT NULL,
	price_net NUMERIC(10, 2) NOT NULL,
	price_vat NUMERIC(10, 2) NOT NULL,
	currency CHAR(3) NOT NULL,
	status VARCHAR(16) NOT NULL,
	cancellation_reason TEXT,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	confirmed_at TIMESTAMP WITH TIME ZONE,
	cancelled_at TIMESTAMP WITH TIME ZONE,
	completed_at TIMESTAMP WITH TIME ZONE
);
CREATE INDEX IF NOT EXISTS reservations_view_vehicle_idx
	ON reservations_view (vehicle_id, pickup_date, return_date);`)
	if err != nil {
		return fmt.Errorf("failed to create reservations_view table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS customers_view (
	customer_id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(64) NOT NULL,
	date_of_birth DATE NOT NULL,
	street VARCHAR(255) NOT NULL,
	city VARCHAR(255) NOT NULL,
	postal_code VARCHAR(32) NOT NULL,
	country VARCHAR(64) NOT NULL,
	license_number VARCHAR(64) NOT NULL,
	license_country VARCHAR(64) NOT NULL,
	license_issued_at DATE NOT NULL,
	license_expires_at DATE NOT NULL,
	status VARCHAR(16) NOT NULL,
	registered_at TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("failed to create customers_view table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS guest_booking_attempts (
	idempotency_key VARCHAR(255) PRIMARY KEY,
	customer_id UUID,
	reservation_id UUID,
	step VARCHAR(32) NOT NULL,
	price_net NUMERIC(12, 2),
	price_vat NUMERIC(12, 2),
	price_currency VARCHAR(3),
	last_error TEXT,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("failed to create guest_booking_attempts table: %w", err)
	}

	return nil
}
