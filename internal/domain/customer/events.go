package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

// Event is the closed set of customer events.
type Event interface {
	domain.Event
	isCustomerEvent()
}

type Registered struct {
	CustomerID  uuid.UUID      `json:"customer_id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	DateOfBirth time.Time      `json:"date_of_birth"`
	Address     Address        `json:"address"`
	License     DriversLicense `json:"license"`
	At          time.Time      `json:"at"`
}

func (e Registered) AggregateID() string { return e.CustomerID.String() }
func (e Registered) EventName() string   { return "customer.registered" }
func (Registered) isCustomerEvent()      {}

type ProfileUpdated struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    Address   `json:"address"`
	At         time.Time `json:"at"`
}

func (e ProfileUpdated) AggregateID() string { return e.CustomerID.String() }
func (e ProfileUpdated) EventName() string   { return "customer.profile_updated" }
func (ProfileUpdated) isCustomerEvent()      {}

type LicenseUpdated struct {
	CustomerID uuid.UUID      `json:"customer_id"`
	License    DriversLicense `json:"license"`
	At         time.Time      `json:"at"`
}

func (e LicenseUpdated) AggregateID() string { return e.CustomerID.String() }
func (e LicenseUpdated) EventName() string   { return "customer.license_updated" }
func (LicenseUpdated) isCustomerEvent()      {}

type EmailChanged struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Email      string    `json:"email"`
	At         time.Time `json:"at"`
}

func (e EmailChanged) AggregateID() string { return e.CustomerID.String() }
func (e EmailChanged) EventName() string   { return "customer.email_changed" }
func (EmailChanged) isCustomerEvent()      {}

type StatusChanged struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Status     Status    `json:"status"`
	Reason     string    `json:"reason"`
	At         time.Time `json:"at"`
}

func (e StatusChanged) AggregateID() string { return e.CustomerID.String() }
func (e StatusChanged) EventName() string   { return "customer.status_changed" }
func (StatusChanged) isCustomerEvent()      {}
