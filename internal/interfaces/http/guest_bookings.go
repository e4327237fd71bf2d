package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/guestbooking"
)

type bookAsGuestRequest struct {
	Customer        registerCustomerRequest `json:"customer"`
	VehicleID       uuid.UUID               `json:"vehicle_id"`
	CategoryCode    string                  `json:"category_code"`
	PickupDate      time.Time               `json:"pickup_date"`
	ReturnDate      time.Time               `json:"return_date"`
	PickupLocation  string                  `json:"pickup_location"`
	DropoffLocation string                  `json:"dropoff_location"`
}

type bookAsGuestResponse struct {
	CustomerID    uuid.UUID       `json:"customer_id"`
	ReservationID uuid.UUID       `json:"reservation_id"`
	PriceNet      decimal.Decimal `json:"price_net"`
	PriceVAT      decimal.Decimal `json:"price_vat"`
	Currency      string          `json:"currency"`
}

func (s *Server) BookAsGuestHandler(c echo.Context) error {
	var req bookAsGuestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := s.bookAsGuest.BookAsGuest(c.Request().Context(), guestbooking.BookAsGuestReq{
		Customer:        req.Customer.toReq(),
		VehicleID:       req.VehicleID,
		CategoryCode:    req.CategoryCode,
		PickupDate:      req.PickupDate,
		ReturnDate:      req.ReturnDate,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
	})
	if err != nil {
		var stepErr *guestbooking.StepError
		if errors.As(err, &stepErr) {
			return respondStepError(c, stepErr)
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, bookAsGuestResponse{
		CustomerID:    res.CustomerID,
		ReservationID: res.ReservationID,
		PriceNet:      res.Price.Net,
		PriceVAT:      res.Price.VAT,
		Currency:      res.Price.Currency,
	})
}

// respondStepError keeps the failed step visible to the caller, so a
// retry with the same Idempotency-Key can be correlated with how far
// the previous attempt got.
func respondStepError(c echo.Context, stepErr *guestbooking.StepError) error {
	return c.JSON(statusForError(stepErr), errorResponse{
		Error: stepErr.Error(),
		Step:  stepErr.Step,
	})
}
