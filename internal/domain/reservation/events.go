package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

// Event is the closed set of reservation events. Adding a new event
// type here forces every consumer (apply, projector handlers) to
// handle it explicitly.
type Event interface {
	domain.Event
	isReservationEvent()
}

type Created struct {
	ReservationID   uuid.UUID    `json:"reservation_id"`
	VehicleID       uuid.UUID    `json:"vehicle_id"`
	CustomerID      uuid.UUID    `json:"customer_id"`
	Period          Period       `json:"period"`
	PickupLocation  string       `json:"pickup_location"`
	DropoffLocation string       `json:"dropoff_location"`
	Price           domain.Money `json:"price"`
	At              time.Time    `json:"at"`
}

func (e Created) AggregateID() string { return e.ReservationID.String() }
func (e Created) EventName() string   { return "reservation.created" }
func (Created) isReservationEvent()   {}

type Confirmed struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	At            time.Time `json:"at"`
}

func (e Confirmed) AggregateID() string { return e.ReservationID.String() }
func (e Confirmed) EventName() string   { return "reservation.confirmed" }
func (Confirmed) isReservationEvent()   {}

type Cancelled struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Reason        string    `json:"reason,omitempty"`
	At            time.Time `json:"at"`
}

func (e Cancelled) AggregateID() string { return e.ReservationID.String() }
func (e Cancelled) EventName() string   { return "reservation.cancelled" }
func (Cancelled) isReservationEvent()   {}

type Activated struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	At            time.Time `json:"at"`
}

func (e Activated) AggregateID() string { return e.ReservationID.String() }
func (e Activated) EventName() string   { return "reservation.activated" }
func (Activated) isReservationEvent()   {}

type Completed struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	At            time.Time `json:"at"`
}

func (e Completed) AggregateID() string { return e.ReservationID.String() }
func (e Completed) EventName() string   { return "reservation.completed" }
func (Completed) isReservationEvent()   {}

type MarkedNoShow struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	At            time.Time `json:"at"`
}

func (e MarkedNoShow) AggregateID() string { return e.ReservationID.String() }
func (e MarkedNoShow) EventName() string   { return "reservation.marked_no_show" }
func (MarkedNoShow) isReservationEvent()   {}
