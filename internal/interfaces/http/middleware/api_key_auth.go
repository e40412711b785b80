package middleware

import (
	"net/http"
	"strings"

	"fraud-radar.backend/internal/metrics"
	"fraud-radar.backend/internal/usecases"
	"fraud-radar.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer credentials
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for the authenticated owner ID
	UserIDKey = "userId"
	// ApiKeyIDKey is the context key for the authenticated credential ID
	ApiKeyIDKey = "apiKeyId"
)

// APIKeyAuthMiddleware authenticates requests with a bearer API key. Every
// rejection uses the same body and status so callers cannot probe which
// part of the credential check failed.
func APIKeyAuthMiddleware(apiKeyUsecase *usecases.ApiKeyUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			metrics.AuthFailuresTotal.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing or invalid Authorization header",
			})
			return
		}

		rawKey := strings.TrimPrefix(authHeader, BearerPrefix)
		key, err := apiKeyUsecase.Authenticate(c.Request.Context(), rawKey)
		if err != nil {
			metrics.AuthFailuresTotal.Inc()
			logger.Debug(c.Request.Context(), "api key authentication failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid API key",
			})
			return
		}

		c.Set(UserIDKey, key.UserID)
		c.Set(ApiKeyIDKey, key.ID)

		c.Next()
	}
}

// GetUserID gets the authenticated owner ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetApiKeyID gets the authenticated credential ID from context
func GetApiKeyID(c *gin.Context) (uuid.UUID, bool) {
	keyID, exists := c.Get(ApiKeyIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return keyID.(uuid.UUID), true
}
