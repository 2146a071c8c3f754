package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to status codes. Anything unknown is
// logged and reported as a 500 without details.
func respondError(c *gin.Context, err error) {
	code, msg := resolveError(err)
	if code == http.StatusInternalServerError {
		log := logger.Get()
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("unhandled error")
	}
	c.AbortWithStatusJSON(code, errorResponse{Error: msg})
}

func resolveError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, "slot not found"
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, "booking not found"
	case errors.Is(err, domain.ErrSlotExists):
		return http.StatusConflict, "slot already exists"
	case errors.Is(err, domain.ErrSlotUnavailable):
		return http.StatusConflict, "slot is not available"
	}
	return http.StatusInternalServerError, "internal server error"
}
