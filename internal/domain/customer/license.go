package customer

import (
	"time"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

// MinLicenseValidityDays is the minimum remaining validity a driver's
// license must have at registration or update. A license expiring in
// exactly this many days still passes.
const MinLicenseValidityDays = 30

type DriversLicense struct {
	Number         string    `json:"number"`
	IssuingCountry string    `json:"issuing_country"`
	IssuedAt       time.Time `json:"issued_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func (l DriversLicense) Equal(other DriversLicense) bool {
	return l.Number == other.Number &&
		l.IssuingCountry == other.IssuingCountry &&
		l.IssuedAt.Equal(other.IssuedAt) &&
		l.ExpiresAt.Equal(other.ExpiresAt)
}

// validate checks the license against the current date. The checks run
// in order and fail fast on the first violation.
func (l DriversLicense) validate(now time.Time) error {
	if l.Number == "" {
		return domain.Validationf("driver's license number must not be empty")
	}
	if l.IssuingCountry == "" {
		return domain.Validationf("driver's license issuing country must not be empty")
	}

	today := domain.ToDate(now)
	expiry := domain.ToDate(l.ExpiresAt)

	if expiry.Before(today) {
		return domain.Validationf("driver's license expired on %s", expiry.Format(time.DateOnly))
	}
	if expiry.Before(today.AddDate(0, 0, MinLicenseValidityDays)) {
		return domain.Validationf("driver's license must stay valid for at least %d more days", MinLicenseValidityDays)
	}
	return nil
}
