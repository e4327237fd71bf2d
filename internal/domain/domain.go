package domain

import "time"

// ToDate truncates a timestamp to its UTC calendar day. Booking
// periods and license validity are compared at whole-day precision.
func ToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Event is a domain event: an immutable fact about an aggregate.
// Concrete event types form a closed set per aggregate package.
type Event interface {
	// AggregateID returns the id of the aggregate the event belongs to.
	AggregateID() string

	// EventName returns the stable, serialization-safe name of the event.
	EventName() string
}
