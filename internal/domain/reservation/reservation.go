package reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Reservation is an immutable snapshot of a booking, rebuilt by
// folding its event stream. Commands return a new snapshot plus the
// emitted event and never mutate the receiver.
type Reservation struct {
	ID                 uuid.UUID
	VehicleID          uuid.UUID
	CustomerID         uuid.UUID
	Period             Period
	PickupLocation     string
	DropoffLocation    string
	Price              domain.Money
	Status             Status
	CancellationReason string

	CreatedAt   time.Time
	ConfirmedAt time.Time
	CancelledAt time.Time
	CompletedAt time.Time
}

// Create validates a new booking and emits Created. The caller is
// responsible for the cross-aggregate vehicle-availability check; the
// aggregate only enforces invariants over its own data.
func Create(
	id uuid.UUID,
	vehicleID uuid.UUID,
	customerID uuid.UUID,
	period Period,
	pickupLocation string,
	dropoffLocation string,
	price domain.Money,
	now time.Time,
) (Reservation, Event, error) {
	if id == uuid.Nil {
		return Reservation{}, nil, domain.Validationf("reservation id must not be empty")
	}
	if vehicleID == uuid.Nil {
		return Reservation{}, nil, domain.Validationf("vehicle id must not be empty")
	}
	if customerID == uuid.Nil {
		return Reservation{}, nil, domain.Validationf("customer id must not be empty")
	}
	if period.IsZero() {
		return Reservation{}, nil, domain.Validationf("booking period must not be empty")
	}
	if pickupLocation == "" || dropoffLocation == "" {
		return Reservation{}, nil, domain.Validationf("pickup and dropoff locations must not be empty")
	}
	if price.IsZero() {
		return Reservation{}, nil, domain.Validationf("price must not be empty")
	}

	ev := Created{
		ReservationID:   id,
		VehicleID:       vehicleID,
		CustomerID:      customerID,
		Period:          period,
		PickupLocation:  pickupLocation,
		DropoffLocation: dropoffLocation,
		Price:           price,
		At:              now,
	}
	next, err := Reservation{}.apply(ev)
	return next, ev, err
}

// Confirm is only valid from pending.
func (r Reservation) Confirm(now time.Time) (Reservation, Event, error) {
	if r.Status != StatusPending {
		return r, nil, domain.Transitionf("cannot confirm a %s reservation", r.Status)
	}
	ev := Confirmed{ReservationID: r.ID, At: now}
	next, err := r.apply(ev)
	return next, ev, err
}

// Cancel is valid from pending or confirmed. Cancelling an already
// cancelled reservation is a failure, not a silent no-op.
func (r Reservation) Cancel(reason string, now time.Time) (Reservation, Event, error) {
	if r.Status != StatusPending && r.Status != StatusConfirmed {
		return r, nil, domain.Transitionf("cannot cancel a %s reservation", r.Status)
	}
	ev := Cancelled{ReservationID: r.ID, Reason: reason, At: now}
	next, err := r.apply(ev)
	return next, ev, err
}

// MarkAsActive records the vehicle handover; only valid from confirmed.
func (r Reservation) MarkAsActive(now time.Time) (Reservation, Event, error) {
	if r.Status != StatusConfirmed {
		return r, nil, domain.Transitionf("cannot activate a %s reservation", r.Status)
	}
	ev := Activated{ReservationID: r.ID, At: now}
	next, err := r.apply(ev)
	return next, ev, err
}

// Complete records the vehicle return; only valid from active.
func (r Reservation) Complete(now time.Time) (Reservation, Event, error) {
	if r.Status != StatusActive {
		return r, nil, domain.Transitionf("cannot complete a %s reservation", r.Status)
	}
	ev := Completed{ReservationID: r.ID, At: now}
	next, err := r.apply(ev)
	return next, ev, err
}

// MarkAsNoShow records that the customer never arrived; only valid
// from pending.
func (r Reservation) MarkAsNoShow(now time.Time) (Reservation, Event, error) {
	if r.Status != StatusPending {
		return r, nil, domain.Transitionf("cannot mark a %s reservation as no-show", r.Status)
	}
	ev := MarkedNoShow{ReservationID: r.ID, At: now}
	next, err := r.apply(ev)
	return next, ev, err
}

// FromEvents rebuilds a reservation by folding its stream in order.
// Folding the same sequence always yields the same snapshot.
func FromEvents(events []domain.Event) (Reservation, error) {
	var r Reservation
	for _, ev := range events {
		next, err := r.apply(ev)
		if err != nil {
			return Reservation{}, err
		}
		r = next
	}
	return r, nil
}

func (r Reservation) apply(ev domain.Event) (Reservation, error) {
	switch e := ev.(type) {
	case Created:
		return Reservation{
			ID:              e.ReservationID,
			VehicleID:       e.VehicleID,
			CustomerID:      e.CustomerID,
			Period:          e.Period,
			PickupLocation:  e.PickupLocation,
			DropoffLocation: e.DropoffLocation,
			Price:           e.Price,
			Status:          StatusPending,
			CreatedAt:       e.At,
		}, nil
	case Confirmed:
		r.Status = StatusConfirmed
		r.ConfirmedAt = e.At
		return r, nil
	case Cancelled:
		r.Status = StatusCancelled
		r.CancellationReason = e.Reason
		r.CancelledAt = e.At
		return r, nil
	case Activated:
		r.Status = StatusActive
		return r, nil
	case Completed:
		r.Status = StatusCompleted
		r.CompletedAt = e.At
		return r, nil
	case MarkedNoShow:
		r.Status = StatusNoShow
		return r, nil
	default:
		return Reservation{}, fmt.Errorf("reservation: unexpected event %T", ev)
	}
}
