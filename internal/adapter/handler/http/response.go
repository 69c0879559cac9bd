package http

import (
	"errors"
	"net/http"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error string `json:"error"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: message})
}

// statusFromError maps core outcomes to status codes: coded domain errors are
// expected rejections, validation errors are bad requests, anything else is an
// internal error.
func statusFromError(err error) int {
	switch domain.Code(err) {
	case domain.ErrUnauthorized:
		return http.StatusForbidden
	case domain.ErrNotFound, domain.ErrSoldOut, domain.ErrExternalDependency,
		domain.ErrInvalidReservation, domain.ErrInvalidRental, domain.ErrInvalidState:
		return http.StatusBadRequest
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
