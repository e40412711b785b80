package handlers

import (
	"net/http"

	"fraud-radar.backend/internal/interfaces/http/middleware"
	"fraud-radar.backend/internal/interfaces/http/response"
	"fraud-radar.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApiKeyHandler exposes read and revoke operations over the caller's own
// keys. Minting stays in the provisioning CLI.
type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// ListApiKeys lists the caller's API keys (prefixes only, never digests)
func (h *ApiKeyHandler) ListApiKeys(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}

	keys, err := h.apiKeyUsecase.ListApiKeys(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"api_keys": keys})
}

// RevokeApiKey deactivates one of the caller's keys
func (h *ApiKeyHandler) RevokeApiKey(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}

	keyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid API key ID"})
		return
	}

	if err := h.apiKeyUsecase.RevokeApiKey(c.Request.Context(), userID, keyID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}
