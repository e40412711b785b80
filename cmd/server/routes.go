package main

import (
	"net/http"
	"time"

	"fraud-radar.backend/internal/interfaces/http/handlers"
	"fraud-radar.backend/internal/interfaces/http/middleware"
	"fraud-radar.backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

type routeDeps struct {
	scoreHandler       *handlers.ScoreHandler
	transactionHandler *handlers.TransactionHandler
	usageHandler       *handlers.UsageHandler
	apiKeyHandler      *handlers.ApiKeyHandler
	authMiddleware     gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(metrics.Middleware())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   apiVersion,
		})
	})
	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/api/v1")
	v1.Use(d.authMiddleware)
	{
		v1.POST("/score", middleware.IdempotencyMiddleware(), d.scoreHandler.ScoreTransaction)

		v1.GET("/transactions", d.transactionHandler.ListTransactions)
		v1.GET("/transactions/:id", d.transactionHandler.GetTransaction)

		v1.GET("/usage", d.usageHandler.ListUsage)

		v1.GET("/api-keys", d.apiKeyHandler.ListApiKeys)
		v1.DELETE("/api-keys/:id", d.apiKeyHandler.RevokeApiKey)
	}
}
