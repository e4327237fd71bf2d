package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

// PricingClient calls the external pricing service. Failures wrap
// domain.ErrCollaborator so callers can tell a provider outage from a
// validation problem.
type PricingClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPricingClient(baseURL string) *PricingClient {
	return &PricingClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type calculatePriceRequest struct {
	CategoryCode string `json:"category_code"`
	PickupDate   string `json:"pickup_date"`
	ReturnDate   string `json:"return_date"`
	LocationCode string `json:"location_code,omitempty"`
}

type calculatePriceResponse struct {
	TotalPriceNet decimal.Decimal `json:"total_price_net"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	Currency      string          `json:"currency"`
}

func (c *PricingClient) CalculatePrice(ctx context.Context, categoryCode string, pickupDate, returnDate time.Time, locationCode string) (domain.Money, error) {
	body, err := json.Marshal(calculatePriceRequest{
		CategoryCode: categoryCode,
		PickupDate:   pickupDate.Format(time.DateOnly),
		ReturnDate:   returnDate.Format(time.DateOnly),
		LocationCode: locationCode,
	})
	if err != nil {
		return domain.Money{}, fmt.Errorf("encode price request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/prices/calculate", bytes.NewReader(body))
	if err != nil {
		return domain.Money{}, fmt.Errorf("build price request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Money{}, fmt.Errorf("calculate price: %w: %v", domain.ErrCollaborator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Money{}, fmt.Errorf("calculate price: %w: status %d: %s", domain.ErrCollaborator, resp.StatusCode, msg)
	}

	var payload calculatePriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Money{}, fmt.Errorf("calculate price: %w: decode response: %v", domain.ErrCollaborator, err)
	}

	return domain.NewMoney(payload.TotalPriceNet, payload.VATAmount, payload.Currency)
}
