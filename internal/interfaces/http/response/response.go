package response

import (
	"errors"
	"net/http"

	domainerrors "fraud-radar.backend/internal/domain/errors"
	"github.com/gin-gonic/gin"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Credential failures collapse into one
// opaque unauthorized body so callers cannot tell a malformed key from an
// unknown or revoked one.
func Error(c *gin.Context, err error) {
	if domainerrors.IsAuthError(err) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}
	if errors.Is(err, domainerrors.ErrInvalidAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: must be a positive number"})
		return
	}

	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
