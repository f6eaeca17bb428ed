package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/domain"
	"storefront-api/internal/payment"
	authsvc "storefront-api/internal/service/auth"
)

// Every operation answers with a success flag; failures always carry a
// human-readable message and never leak an unhandled fault.

func respondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func respondMessage(c *gin.Context, msg string) {
	respondOK(c, gin.H{"message": msg})
}

func respondFailure(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}

// respondError maps service errors onto the failure envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		respondFailure(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondFailure(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		respondFailure(c, http.StatusConflict, "already exists")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		respondFailure(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, payment.ErrGateway):
		respondFailure(c, http.StatusBadGateway, "payment gateway unavailable")
	default:
		respondFailure(c, http.StatusInternalServerError, "internal error")
	}
}
