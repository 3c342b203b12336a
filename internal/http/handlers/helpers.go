// README: HTTP helper utilities for JSON errors and status mapping.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/modules/analytics"
	"speedyrider/internal/modules/location"
	"speedyrider/internal/modules/order"
	"speedyrider/internal/modules/rider"
)

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, rider.ErrNotFound),
		errors.Is(err, location.ErrNoPosition):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrIllegalTransition), errors.Is(err, order.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrVerificationFailed), errors.Is(err, order.ErrProofRequired):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, rider.ErrInvalidCredentials), errors.Is(err, rider.ErrSessionInvalid):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, rider.ErrThrottled), errors.Is(err, analytics.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
