package customer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func validLicense() DriversLicense {
	return DriversLicense{
		Number:         "B123456789",
		IssuingCountry: "DE",
		IssuedAt:       testNow.AddDate(-5, 0, 0),
		ExpiresAt:      testNow.AddDate(2, 0, 0),
	}
}

func validAddress() Address {
	return Address{
		Street:     "Hauptstrasse 1",
		City:       "Berlin",
		PostalCode: "10115",
		Country:    "DE",
	}
}

func register(t *testing.T) Customer {
	t.Helper()
	c, _, err := Register(
		uuid.New(), "Alex Schmidt", "alex@example.com", "+49 30 1234567",
		testNow.AddDate(-30, 0, 0), validAddress(), validLicense(),
		testNow,
	)
	require.NoError(t, err)
	return c
}

func TestRegister(t *testing.T) {
	t.Run("valid registration starts active", func(t *testing.T) {
		c := register(t)
		assert.Equal(t, StatusActive, c.Status)
		assert.Equal(t, "Alex Schmidt", c.Name)
		assert.Equal(t, testNow, c.RegisteredAt)
	})

	t.Run("exactly at minimum age passes", func(t *testing.T) {
		dob := testNow.AddDate(-MinAge, 0, 0)
		_, _, err := Register(uuid.New(), "Kim", "kim@example.com", "", dob, validAddress(), validLicense(), testNow)
		require.NoError(t, err)
	})

	t.Run("one day under minimum age fails", func(t *testing.T) {
		dob := testNow.AddDate(-MinAge, 0, 1)
		_, _, err := Register(uuid.New(), "Kim", "kim@example.com", "", dob, validAddress(), validLicense(), testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("expired license fails", func(t *testing.T) {
		license := validLicense()
		license.ExpiresAt = testNow.AddDate(0, 0, -1)
		_, _, err := Register(uuid.New(), "Kim", "kim@example.com", "", testNow.AddDate(-30, 0, 0), validAddress(), license, testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("license valid for exactly the minimum passes", func(t *testing.T) {
		license := validLicense()
		license.ExpiresAt = testNow.AddDate(0, 0, MinLicenseValidityDays)
		_, _, err := Register(uuid.New(), "Kim", "kim@example.com", "", testNow.AddDate(-30, 0, 0), validAddress(), license, testNow)
		require.NoError(t, err)
	})

	t.Run("license valid one day under the minimum fails", func(t *testing.T) {
		license := validLicense()
		license.ExpiresAt = testNow.AddDate(0, 0, MinLicenseValidityDays-1)
		_, _, err := Register(uuid.New(), "Kim", "kim@example.com", "", testNow.AddDate(-30, 0, 0), validAddress(), license, testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("license without number fails", func(t *testing.T) {
		license := validLicense()
		license.Number = ""
		_, _, err := Register(uuid.New(), "Kim", "kim@example.com", "", testNow.AddDate(-30, 0, 0), validAddress(), license, testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid email fails", func(t *testing.T) {
		_, _, err := Register(uuid.New(), "Kim", "not-an-email", "", testNow.AddDate(-30, 0, 0), validAddress(), validLicense(), testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("empty name fails", func(t *testing.T) {
		_, _, err := Register(uuid.New(), "", "kim@example.com", "", testNow.AddDate(-30, 0, 0), validAddress(), validLicense(), testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("changed profile emits event", func(t *testing.T) {
		c := register(t)
		updated, ev, err := c.UpdateProfile("Alex Meier", c.Phone, c.Address, testNow)
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, "Alex Meier", updated.Name)
	})

	t.Run("unchanged profile is a no-op", func(t *testing.T) {
		c := register(t)
		updated, ev, err := c.UpdateProfile(c.Name, c.Phone, c.Address, testNow)
		require.NoError(t, err)
		assert.Nil(t, ev)
		assert.Equal(t, c, updated)
	})
}

func TestUpdateDriversLicense(t *testing.T) {
	t.Run("new license replaces old", func(t *testing.T) {
		c := register(t)
		license := validLicense()
		license.Number = "B987654321"

		updated, ev, err := c.UpdateDriversLicense(license, testNow)
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, "B987654321", updated.License.Number)
	})

	t.Run("unchanged license is a no-op", func(t *testing.T) {
		c := register(t)
		_, ev, err := c.UpdateDriversLicense(c.License, testNow)
		require.NoError(t, err)
		assert.Nil(t, ev)
	})

	t.Run("short validity is rejected on update too", func(t *testing.T) {
		c := register(t)
		license := validLicense()
		license.ExpiresAt = testNow.AddDate(0, 0, 5)

		_, _, err := c.UpdateDriversLicense(license, testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUpdateEmail(t *testing.T) {
	c := register(t)

	updated, ev, err := c.UpdateEmail("new@example.com", testNow)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "new@example.com", updated.Email)

	_, ev, err = updated.UpdateEmail("new@example.com", testNow)
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestChangeStatus(t *testing.T) {
	t.Run("suspend with reason", func(t *testing.T) {
		c := register(t)
		updated, ev, err := c.ChangeStatus(StatusSuspended, "unpaid invoices", testNow)
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, StatusSuspended, updated.Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		c := register(t)
		_, ev, err := c.ChangeStatus(StatusActive, "already active", testNow)
		require.NoError(t, err)
		assert.Nil(t, ev)
	})

	t.Run("missing reason fails", func(t *testing.T) {
		c := register(t)
		_, _, err := c.ChangeStatus(StatusBlocked, "  ", testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown status fails", func(t *testing.T) {
		c := register(t)
		_, _, err := c.ChangeStatus(Status("frozen"), "because", testNow)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestFromEvents(t *testing.T) {
	c := register(t)

	c2, licenseEv, err := c.UpdateDriversLicense(DriversLicense{
		Number:         "C11111111",
		IssuingCountry: "AT",
		IssuedAt:       testNow.AddDate(-1, 0, 0),
		ExpiresAt:      testNow.AddDate(10, 0, 0),
	}, testNow.Add(time.Hour))
	require.NoError(t, err)

	c3, statusEv, err := c2.ChangeStatus(StatusSuspended, "fraud review", testNow.Add(2*time.Hour))
	require.NoError(t, err)

	registeredEv := Registered{
		CustomerID:  c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		DateOfBirth: c.DateOfBirth,
		Address:     c.Address,
		License:     validLicense(),
		At:          c.RegisteredAt,
	}

	rebuilt, err := FromEvents([]domain.Event{registeredEv, licenseEv, statusEv})
	require.NoError(t, err)
	assert.Equal(t, c3, rebuilt)
}
