package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/reservations"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

type createReservationRequest struct {
	VehicleID       uuid.UUID       `json:"vehicle_id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	PickupDate      time.Time       `json:"pickup_date"`
	ReturnDate      time.Time       `json:"return_date"`
	PickupLocation  string          `json:"pickup_location"`
	DropoffLocation string          `json:"dropoff_location"`
	PriceNet        decimal.Decimal `json:"price_net"`
	PriceVAT        decimal.Decimal `json:"price_vat"`
	Currency        string          `json:"currency"`
}

type createReservationResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
}

func (s *Server) CreateReservationHandler(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	price, err := domain.NewMoney(req.PriceNet, req.PriceVAT, req.Currency)
	if err != nil {
		return respondError(c, err)
	}

	id, err := s.createReservation.CreateReservation(c.Request().Context(), reservations.CreateReservationReq{
		VehicleID:       req.VehicleID,
		CustomerID:      req.CustomerID,
		PickupDate:      req.PickupDate,
		ReturnDate:      req.ReturnDate,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Price:           price,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, createReservationResponse{ReservationID: id})
}

type cancelReservationRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) ConfirmReservationHandler(c echo.Context) error {
	return s.transitionHandler(c, s.transitionReservation.ConfirmReservation)
}

func (s *Server) CancelReservationHandler(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return err
	}

	var req cancelReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.transitionReservation.CancelReservation(c.Request().Context(), id, req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ActivateReservationHandler(c echo.Context) error {
	return s.transitionHandler(c, s.transitionReservation.ActivateReservation)
}

func (s *Server) CompleteReservationHandler(c echo.Context) error {
	return s.transitionHandler(c, s.transitionReservation.CompleteReservation)
}

func (s *Server) MarkNoShowHandler(c echo.Context) error {
	return s.transitionHandler(c, s.transitionReservation.MarkReservationNoShow)
}

type reservationResponse struct {
	ReservationID      uuid.UUID       `json:"reservation_id"`
	VehicleID          uuid.UUID       `json:"vehicle_id"`
	CustomerID         uuid.UUID       `json:"customer_id"`
	PickupDate         time.Time       `json:"pickup_date"`
	ReturnDate         time.Time       `json:"return_date"`
	PickupLocation     string          `json:"pickup_location"`
	DropoffLocation    string          `json:"dropoff_location"`
	PriceNet           decimal.Decimal `json:"price_net"`
	PriceVAT           decimal.Decimal `json:"price_vat"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// GetReservationHandler serves the read model, which may trail the
// event stream slightly after a write.
func (s *Server) GetReservationHandler(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return err
	}

	row, err := s.reservationsView.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, reservationResponse{
		ReservationID:      row.ReservationID,
		VehicleID:          row.VehicleID,
		CustomerID:         row.CustomerID,
		PickupDate:         row.PickupDate,
		ReturnDate:         row.ReturnDate,
		PickupLocation:     row.PickupLocation,
		DropoffLocation:    row.DropoffLocation,
		PriceNet:           row.PriceNet,
		PriceVAT:           row.PriceVAT,
		Currency:           row.Currency,
		Status:             row.Status,
		CancellationReason: row.CancellationReason.String,
		CreatedAt:          row.CreatedAt,
	})
}

func (s *Server) transitionHandler(c echo.Context, command func(ctx context.Context, id uuid.UUID) error) error {
	id, err := reservationID(c)
	if err != nil {
		return err
	}
	if err := command(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func reservationID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("reservation_id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid reservation id: %v", err))
	}
	return id, nil
}
