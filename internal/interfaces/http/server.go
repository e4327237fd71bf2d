package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/customers"
	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/guestbooking"
	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/reservations"
	"github.com/smartsolutionslab/orange-car-rental/internal/idempotency"
	"github.com/smartsolutionslab/orange-car-rental/internal/repository"
)

type Server struct {
	e      *echo.Echo
	addr   string
	logger zerolog.Logger

	createReservation     *reservations.CreateReservationUsecase
	transitionReservation *reservations.TransitionReservationUsecase
	registerCustomer      *customers.RegisterCustomerUsecase
	updateCustomer        *customers.UpdateCustomerUsecase
	bookAsGuest           *guestbooking.BookAsGuestUsecase

	reservationsView *repository.ReservationsViewRepo
	customersView    *repository.CustomersViewRepo
}

func NewServer(
	addr string,
	logger zerolog.Logger,
	createReservation *reservations.CreateReservationUsecase,
	transitionReservation *reservations.TransitionReservationUsecase,
	registerCustomer *customers.RegisterCustomerUsecase,
	updateCustomer *customers.UpdateCustomerUsecase,
	bookAsGuest *guestbooking.BookAsGuestUsecase,
	reservationsView *repository.ReservationsViewRepo,
	customersView *repository.CustomersViewRepo,
	routerIsRunning func() bool,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	srv := &Server{
		e:                     e,
		addr:                  addr,
		logger:                logger,
		createReservation:     createReservation,
		transitionReservation: transitionReservation,
		registerCustomer:      registerCustomer,
		updateCustomer:        updateCustomer,
		bookAsGuest:           bookAsGuest,
		reservationsView:      reservationsView,
		customersView:         customersView,
	}

	e.Use(srv.loggingMiddleware)
	e.Use(idempotencyKeyMiddleware)

	e.POST("/reservations", srv.CreateReservationHandler)
	e.POST("/reservations/:reservation_id/confirm", srv.ConfirmReservationHandler)
	e.POST("/reservations/:reservation_id/cancel", srv.CancelReservationHandler)
	e.POST("/reservations/:reservation_id/activate", srv.ActivateReservationHandler)
	e.POST("/reservations/:reservation_id/complete", srv.CompleteReservationHandler)
	e.POST("/reservations/:reservation_id/no-show", srv.MarkNoShowHandler)
	e.GET("/reservations/:reservation_id", srv.GetReservationHandler)

	e.POST("/customers", srv.RegisterCustomerHandler)
	e.PUT("/customers/:customer_id/profile", srv.UpdateProfileHandler)
	e.PUT("/customers/:customer_id/license", srv.UpdateLicenseHandler)
	e.PUT("/customers/:customer_id/email", srv.UpdateEmailHandler)
	e.PUT("/customers/:customer_id/status", srv.ChangeStatusHandler)
	e.GET("/customers/:customer_id", srv.GetCustomerHandler)

	e.POST("/guest-bookings", srv.BookAsGuestHandler)

	e.GET("/health", func(c echo.Context) error {
		if !routerIsRunning() {
			return c.String(http.StatusServiceUnavailable, "router is not running")
		}
		return c.String(http.StatusOK, "ok")
	})

	return srv
}

func (s *Server) Start() error {
	err := s.e.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.logger.Debug().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("handling a request")

		err := next(c)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("path", c.Request().URL.Path).
				Msg("request handling error")
		}
		return err
	}
}

// idempotencyKeyMiddleware propagates the Idempotency-Key header so
// a retried guest booking resumes instead of registering twice.
func idempotencyKeyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if key := c.Request().Header.Get("Idempotency-Key"); key != "" {
			ctx := idempotency.WithKey(c.Request().Context(), key)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}
