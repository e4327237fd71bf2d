package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

func TestPricingClientCalculatePrice(t *testing.T) {
	pickup := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/prices/calculate", r.URL.Path)

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "compact", req["category_code"])
			assert.Equal(t, "2026-03-12", req["pickup_date"])
			assert.Equal(t, "2026-03-16", req["return_date"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"total_price_net": "200.00",
				"vat_amount":      "38.00",
				"currency":        "EUR",
			})
		}))
		t.Cleanup(srv.Close)

		client := NewPricingClient(srv.URL)
		price, err := client.CalculatePrice(context.Background(), "compact", pickup, ret, "BER")
		require.NoError(t, err)
		assert.True(t, price.Net.Equal(decimal.NewFromInt(200)))
		assert.True(t, price.Gross().Equal(decimal.NewFromInt(238)))
		assert.Equal(t, "EUR", price.Currency)
	})

	t.Run("non-200 is a collaborator failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "pricing unavailable", http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		client := NewPricingClient(srv.URL)
		_, err := client.CalculatePrice(context.Background(), "compact", pickup, ret, "BER")
		require.ErrorIs(t, err, domain.ErrCollaborator)
	})

	t.Run("unreachable service is a collaborator failure", func(t *testing.T) {
		client := NewPricingClient("http://127.0.0.1:1")
		_, err := client.CalculatePrice(context.Background(), "compact", pickup, ret, "BER")
		require.ErrorIs(t, err, domain.ErrCollaborator)
	})

	t.Run("malformed response is a collaborator failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		t.Cleanup(srv.Close)

		client := NewPricingClient(srv.URL)
		_, err := client.CalculatePrice(context.Background(), "compact", pickup, ret, "BER")
		require.ErrorIs(t, err, domain.ErrCollaborator)
	})
}
