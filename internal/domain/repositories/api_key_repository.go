package repositories

import (
	"context"
	"time"

	"fraud-radar.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error)
	// TouchLastUsed records best-effort usage telemetry; last-writer-wins.
	TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
