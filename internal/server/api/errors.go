package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thaliumbank/thalium/internal/common"
)

// writeError maps a service error onto an HTTP status and a stable error
// body {"error": "..."}. Unknown errors surface as 500 without detail.
func writeError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, common.ErrInvalidAmount),
		errors.Is(err, common.ErrMinimumNotMet),
		errors.Is(err, common.ErrSelfTransfer),
		errors.Is(err, common.ErrInvalidOrExpiredCode):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrAuthentication),
		errors.Is(err, common.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrRecipientNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, common.ErrInsufficientFunds),
		errors.Is(err, common.ErrAlreadyRedeemed):
		status = http.StatusUnprocessableEntity
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
