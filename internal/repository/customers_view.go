package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
)

type CustomerRow struct {
	CustomerID     uuid.UUID `db:"customer_id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	DateOfBirth    time.Time `db:"date_of_birth"`
	Street         string    `db:"street"`
	City           string    `db:"city"`
	PostalCode     string    `db:"postal_code"`
	Country        string    `db:"country"`
	LicenseNumber  string    `db:"license_number"`
	LicenseCountry string    `db:"license_country"`
	LicenseIssued  time.Time `db:"license_issued_at"`
	LicenseExpires time.Time `db:"license_expires_at"`
	Status         string    `db:"status"`
	RegisteredAt   time.Time `db:"registered_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type CustomersViewRepo struct {
	db *sqlx.DB
}

func NewCustomersViewRepo(db *sqlx.DB) *CustomersViewRepo {
	return &CustomersViewRepo{db: db}
}

func (r *CustomersViewRepo) InsertRegistered(ctx context.Context, ev customer.Registered) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers_view (
			customer_id, name, email, phone, date_of_birth,
			street, city, postal_code, country,
			license_number, license_country, license_issued_at, license_expires_at,
			status, registered_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (customer_id) DO NOTHING`,
		ev.CustomerID, ev.Name, ev.Email, ev.Phone, ev.DateOfBirth,
		ev.Address.Street, ev.Address.City, ev.Address.PostalCode, ev.Address.Country,
		ev.License.Number, ev.License.IssuingCountry, ev.License.IssuedAt, ev.License.ExpiresAt,
		string(customer.StatusActive), ev.At,
	)
	if err != nil {
		return fmt.Errorf("insert customer view %s: %w", ev.CustomerID, err)
	}
	return nil
}

func (r *CustomersViewRepo) UpdateProfile(ctx context.Context, ev customer.ProfileUpdated) error {
	return r.update(ctx, ev.CustomerID, `
		UPDATE customers_view
		SET name = $2, phone = $3, street = $4, city = $5, postal_code = $6, country = $7, updated_at = $8
		WHERE customer_id = $1`,
		ev.Name, ev.Phone, ev.Address.Street, ev.Address.City, ev.Address.PostalCode, ev.Address.Country, ev.At)
}

func (r *CustomersViewRepo) UpdateLicense(ctx context.Context, ev customer.LicenseUpdated) error {
	return r.update(ctx, ev.CustomerID, `
		UPDATE customers_view
		SET license_number = $2, license_country = $3, license_issued_at = $4, license_expires_at = $5, updated_at = $6
		WHERE customer_id = $1`,
		ev.License.Number, ev.License.IssuingCountry, ev.License.IssuedAt, ev.License.ExpiresAt, ev.At)
}

func (r *CustomersViewRepo) UpdateEmail(ctx context.Context, ev customer.EmailChanged) error {
	return r.update(ctx, ev.CustomerID, `
		UPDATE customers_view SET email = $2, updated_at = $3 WHERE customer_id = $1`,
		ev.Email, ev.At)
}

func (r *CustomersViewRepo) UpdateStatus(ctx context.Context, ev customer.StatusChanged) error {
	return r.update(ctx, ev.CustomerID, `
		UPDATE customers_view SET status = $2, updated_at = $3 WHERE customer_id = $1`,
		string(ev.Status), ev.At)
}

func (r *CustomersViewRepo) update(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	allArgs := append([]any{id}, args...)
	if _, err := r.db.ExecContext(ctx, query, allArgs...); err != nil {
		return fmt.Errorf("update customer view %s: %w", id, err)
	}
	return nil
}

func (r *CustomersViewRepo) GetByID(ctx context.Context, id uuid.UUID) (*CustomerRow, error) {
	var row CustomerRow
	err := r.db.GetContext(ctx, &row, `
		SELECT * FROM customers_view WHERE customer_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer view %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer view %s: %w", id, err)
	}
	return &row, nil
}
