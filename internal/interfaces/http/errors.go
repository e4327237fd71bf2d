package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

type errorResponse struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
}

// respondError maps the domain error taxonomy onto status codes.
func respondError(c echo.Context, err error) error {
	return c.JSON(statusForError(err), errorResponse{Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, eventstore.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCollaborator):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
