package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/customers"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

// CustomersClient calls an external customer-registration service.
// Deployments that register customers locally wire the
// register-customer usecase instead; the saga only sees the
// interface.
type CustomersClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCustomersClient(baseURL string) *CustomersClient {
	return &CustomersClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type registerCustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`

	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`

	LicenseNumber    string `json:"license_number"`
	LicenseCountry   string `json:"license_country"`
	LicenseIssuedAt  string `json:"license_issued_at"`
	LicenseExpiresAt string `json:"license_expires_at"`
}

type registerCustomerResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
}

func (c *CustomersClient) RegisterCustomer(ctx context.Context, req customers.RegisterCustomerReq) (uuid.UUID, error) {
	body, err := json.Marshal(registerCustomerRequest{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth.Format(time.DateOnly),
		Street:           req.Address.Street,
		City:             req.Address.City,
		PostalCode:       req.Address.PostalCode,
		Country:          req.Address.Country,
		LicenseNumber:    req.License.Number,
		LicenseCountry:   req.License.IssuingCountry,
		LicenseIssuedAt:  req.License.IssuedAt.Format(time.DateOnly),
		LicenseExpiresAt: req.License.ExpiresAt.Format(time.DateOnly),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode register request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/customers", bytes.NewReader(body))
	if err != nil {
		return uuid.Nil, fmt.Errorf("build register request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return uuid.Nil, fmt.Errorf("register customer: %w: %v", domain.ErrCollaborator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return uuid.Nil, fmt.Errorf("register customer: %w: status %d: %s", domain.ErrCollaborator, resp.StatusCode, msg)
	}

	var payload registerCustomerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return uuid.Nil, fmt.Errorf("register customer: %w: decode response: %v", domain.ErrCollaborator, err)
	}
	return payload.CustomerID, nil
}
