package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"fraud-radar.backend/internal/config"
	"fraud-radar.backend/internal/infrastructure/repositories"
	"fraud-radar.backend/internal/interfaces/http/handlers"
	"fraud-radar.backend/internal/interfaces/http/middleware"
	"fraud-radar.backend/internal/usecases"
	"fraud-radar.backend/pkg/logger"
	"fraud-radar.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	usageRepo := repositories.NewUsageRepository(db)

	// Usecases
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, userRepo)
	usageUsecase := usecases.NewUsageUsecase(usageRepo)
	engine := usecases.NewScoringEngine(cfg.Scoring.ModelDelay)
	scoreUsecase := usecases.NewScoreUsecase(engine, txRepo, usageUsecase)
	txUsecase := usecases.NewTransactionUsecase(txRepo)

	// Handlers
	d := routeDeps{
		scoreHandler:       handlers.NewScoreHandler(scoreUsecase),
		transactionHandler: handlers.NewTransactionHandler(txUsecase),
		usageHandler:       handlers.NewUsageHandler(usageUsecase),
		apiKeyHandler:      handlers.NewApiKeyHandler(apiKeyUsecase),
		authMiddleware:     middleware.APIKeyAuthMiddleware(apiKeyUsecase),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	registerRoutes(r, d)

	logger.Info(context.Background(), "Starting server", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
