package reservation

import (
	"time"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

// MaxRentalDays is the longest allowed booking span.
const MaxRentalDays = 90

// Period is the inclusive date range between pickup and return,
// normalized to whole days in UTC.
type Period struct {
	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`
}

// NewPeriod validates and normalizes a booking period against the
// current date. The pickup date must not lie in the past, the return
// date must be strictly after the pickup date, and the span must not
// exceed MaxRentalDays.
func NewPeriod(pickup, returnDate, now time.Time) (Period, error) {
	pickup = domain.ToDate(pickup)
	returnDate = domain.ToDate(returnDate)
	today := domain.ToDate(now)

	if pickup.Before(today) {
		return Period{}, domain.Validationf("pickup date %s is in the past", pickup.Format(time.DateOnly))
	}
	if !returnDate.After(pickup) {
		return Period{}, domain.Validationf("return date must be after pickup date")
	}
	if returnDate.Sub(pickup) > MaxRentalDays*24*time.Hour {
		return Period{}, domain.Validationf("booking period exceeds %d days", MaxRentalDays)
	}

	return Period{PickupDate: pickup, ReturnDate: returnDate}, nil
}

// Days returns the number of rental days, counting both boundary days.
func (p Period) Days() int {
	return int(p.ReturnDate.Sub(p.PickupDate)/(24*time.Hour)) + 1
}

// Overlaps reports whether two periods share at least one day.
// A shared boundary day counts as an overlap.
func (p Period) Overlaps(other Period) bool {
	return !p.PickupDate.After(other.ReturnDate) && !p.ReturnDate.Before(other.PickupDate)
}

func (p Period) IsZero() bool {
	return p.PickupDate.IsZero() && p.ReturnDate.IsZero()
}
