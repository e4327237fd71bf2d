package customer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

// MinAge is the minimum customer age at registration.
const MinAge = 18

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusBlocked   Status = "blocked"
)

func (s Status) valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusBlocked:
		return true
	}
	return false
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Customer is an immutable snapshot rebuilt by folding its event
// stream, same discipline as reservation.Reservation.
type Customer struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	DateOfBirth time.Time
	Address     Address
	License     DriversLicense
	Status      Status

	RegisteredAt time.Time
	UpdatedAt    time.Time
}

// Register validates a new customer and emits Registered. The checks
// run in order and fail fast: minimum age, license not expired,
// license validity remaining.
func Register(
	id uuid.UUID,
	name, email, phone string,
	dateOfBirth time.Time,
	address Address,
	license DriversLicense,
	now time.Time,
) (Customer, Event, error) {
	if id == uuid.Nil {
		return Customer{}, nil, domain.Validationf("customer id must not be empty")
	}
	if name == "" {
		return Customer{}, nil, domain.Validationf("name must not be empty")
	}
	if err := validateEmail(email); err != nil {
		return Customer{}, nil, err
	}

	today := domain.ToDate(now)
	if domain.ToDate(dateOfBirth).AddDate(MinAge, 0, 0).After(today) {
		return Customer{}, nil, domain.Validationf("customer must be at least %d years old", MinAge)
	}
	if err := license.validate(now); err != nil {
		return Customer{}, nil, err
	}

	ev := Registered{
		CustomerID:  id,
		Name:        name,
		Email:       email,
		Phone:       phone,
		DateOfBirth: domain.ToDate(dateOfBirth),
		Address:     address,
		License:     license,
		At:          now,
	}
	next, err := Customer{}.apply(ev)
	return next, ev, err
}

// UpdateProfile replaces name, phone and address. Re-applying the
// current values is a no-op that emits no event.
func (c Customer) UpdateProfile(name, phone string, address Address, now time.Time) (Customer, Event, error) {
	if name == "" {
		return c, nil, domain.Validationf("name must not be empty")
	}
	if c.Name == name && c.Phone == phone && c.Address == address {
		return c, nil, nil
	}

	ev := ProfileUpdated{CustomerID: c.ID, Name: name, Phone: phone, Address: address, At: now}
	next, err := c.apply(ev)
	return next, ev, err
}

// UpdateDriversLicense replaces the license, enforcing the same
// validity rules as registration. Unchanged license is a no-op.
func (c Customer) UpdateDriversLicense(license DriversLicense, now time.Time) (Customer, Event, error) {
	if err := license.validate(now); err != nil {
		return c, nil, err
	}
	if c.License.Equal(license) {
		return c, nil, nil
	}

	ev := LicenseUpdated{CustomerID: c.ID, License: license, At: now}
	next, err := c.apply(ev)
	return next, ev, err
}

// UpdateEmail replaces the email address. Unchanged email is a no-op.
func (c Customer) UpdateEmail(email string, now time.Time) (Customer, Event, error) {
	if err := validateEmail(email); err != nil {
		return c, nil, err
	}
	if c.Email == email {
		return c, nil, nil
	}

	ev := EmailChanged{CustomerID: c.ID, Email: email, At: now}
	next, err := c.apply(ev)
	return next, ev, err
}

// ChangeStatus moves the customer to a recognized status with a
// required reason. Unchanged status is a no-op.
func (c Customer) ChangeStatus(status Status, reason string, now time.Time) (Customer, Event, error) {
	if !status.valid() {
		return c, nil, domain.Validationf("unknown customer status %q", status)
	}
	if strings.TrimSpace(reason) == "" {
		return c, nil, domain.Validationf("status change requires a reason")
	}
	if c.Status == status {
		return c, nil, nil
	}

	ev := StatusChanged{CustomerID: c.ID, Status: status, Reason: reason, At: now}
	next, err := c.apply(ev)
	return next, ev, err
}

// FromEvents rebuilds a customer by folding its stream in order.
func FromEvents(events []domain.Event) (Customer, error) {
	var c Customer
	for _, ev := range events {
		next, err := c.apply(ev)
		if err != nil {
			return Customer{}, err
		}
		c = next
	}
	return c, nil
}

func (c Customer) apply(ev domain.Event) (Customer, error) {
	switch e := ev.(type) {
	case Registered:
		return Customer{
			ID:           e.CustomerID,
			Name:         e.Name,
			Email:        e.Email,
			Phone:        e.Phone,
			DateOfBirth:  e.DateOfBirth,
			Address:      e.Address,
			License:      e.License,
			Status:       StatusActive,
			RegisteredAt: e.At,
			UpdatedAt:    e.At,
		}, nil
	case ProfileUpdated:
		c.Name = e.Name
		c.Phone = e.Phone
		c.Address = e.Address
		c.UpdatedAt = e.At
		return c, nil
	case LicenseUpdated:
		c.License = e.License
		c.UpdatedAt = e.At
		return c, nil
	case EmailChanged:
		c.Email = e.Email
		c.UpdatedAt = e.At
		return c, nil
	case StatusChanged:
		c.Status = e.Status
		c.UpdatedAt = e.At
		return c, nil
	default:
		return Customer{}, fmt.Errorf("customer: unexpected event %T", ev)
	}
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return domain.Validationf("invalid email address %q", email)
	}
	return nil
}
