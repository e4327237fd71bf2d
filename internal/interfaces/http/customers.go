package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smartsolutionslab/orange-car-rental/internal/application/usecases/customers"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
)

type addressDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (a addressDTO) toDomain() customer.Address {
	return customer.Address{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

type licenseDTO struct {
	Number         string    `json:"number"`
	IssuingCountry string    `json:"issuing_country"`
	IssuedAt       time.Time `json:"issued_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func (l licenseDTO) toDomain() customer.DriversLicense {
	return customer.DriversLicense{
		Number:         l.Number,
		IssuingCountry: l.IssuingCountry,
		IssuedAt:       l.IssuedAt,
		ExpiresAt:      l.ExpiresAt,
	}
}

type registerCustomerRequest struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	DateOfBirth time.Time  `json:"date_of_birth"`
	Address     addressDTO `json:"address"`
	License     licenseDTO `json:"drivers_license"`
}

func (r registerCustomerRequest) toReq() customers.RegisterCustomerReq {
	return customers.RegisterCustomerReq{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
		Address:     r.Address.toDomain(),
		License:     r.License.toDomain(),
	}
}

type registerCustomerResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
}

func (s *Server) RegisterCustomerHandler(c echo.Context) error {
	var req registerCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := s.registerCustomer.RegisterCustomer(c.Request().Context(), req.toReq())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, registerCustomerResponse{CustomerID: id})
}

type updateProfileRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Address addressDTO `json:"address"`
}

func (s *Server) UpdateProfileHandler(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = s.updateCustomer.UpdateCustomerProfile(c.Request().Context(), id, customers.UpdateProfileReq{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address.toDomain(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateLicenseHandler(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var req licenseDTO
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.updateCustomer.UpdateCustomerLicense(c.Request().Context(), id, req.toDomain()); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type updateEmailRequest struct {
	Email string `json:"email"`
}

func (s *Server) UpdateEmailHandler(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var req updateEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := s.updateCustomer.UpdateCustomerEmail(c.Request().Context(), id, req.Email); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (s *Server) ChangeStatusHandler(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = s.updateCustomer.ChangeCustomerStatus(c.Request().Context(), id, customer.Status(req.Status), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type customerResponse struct {
	CustomerID   uuid.UUID  `json:"customer_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	DateOfBirth  time.Time  `json:"date_of_birth"`
	Address      addressDTO `json:"address"`
	License      licenseDTO `json:"drivers_license"`
	Status       string     `json:"status"`
	RegisteredAt time.Time  `json:"registered_at"`
}

func (s *Server) GetCustomerHandler(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	row, err := s.customersView.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, customerResponse{
		CustomerID:  row.CustomerID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		DateOfBirth: row.DateOfBirth,
		Address: addressDTO{
			Street:     row.Street,
			City:       row.City,
			PostalCode: row.PostalCode,
			Country:    row.Country,
		},
		License: licenseDTO{
			Number:         row.LicenseNumber,
			IssuingCountry: row.LicenseCountry,
			IssuedAt:       row.LicenseIssued,
			ExpiresAt:      row.LicenseExpires,
		},
		Status:       row.Status,
		RegisteredAt: row.RegisteredAt,
	})
}

func customerID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid customer id: %v", err))
	}
	return id, nil
}
