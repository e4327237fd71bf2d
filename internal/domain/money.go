package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a price with net and VAT amounts stored separately.
// The gross amount is always derived, never stored.
type Money struct {
	Net      decimal.Decimal `json:"net"`
	VAT      decimal.Decimal `json:"vat"`
	Currency string          `json:"currency"`
}

func NewMoney(net, vat decimal.Decimal, currency string) (Money, error) {
	if net.IsNegative() {
		return Money{}, Validationf("net amount must not be negative")
	}
	if vat.IsNegative() {
		return Money{}, Validationf("VAT amount must not be negative")
	}
	if len(currency) != 3 {
		return Money{}, Validationf("currency must be a 3-letter code, got %q", currency)
	}
	return Money{Net: net, VAT: vat, Currency: currency}, nil
}

// Gross returns net plus VAT.
func (m Money) Gross() decimal.Decimal {
	return m.Net.Add(m.VAT)
}

func (m Money) IsZero() bool {
	return m.Net.IsZero() && m.VAT.IsZero() && m.Currency == ""
}

func (m Money) Equal(other Money) bool {
	return m.Net.Equal(other.Net) && m.VAT.Equal(other.VAT) && m.Currency == other.Currency
}
