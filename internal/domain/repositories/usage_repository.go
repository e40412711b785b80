package repositories

import (
	"context"
	"time"

	"fraud-radar.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type UsageRepository interface {
	// Increment performs a single atomic insert-or-increment keyed by
	// (userID, apiKeyID, periodStart). Counters start at 1 on first use
	// within a period and grow by 1 on every subsequent call.
	Increment(ctx context.Context, userID, apiKeyID uuid.UUID, periodStart, periodEnd, now time.Time) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UsageRecord, error)
	FindByPeriod(ctx context.Context, userID, apiKeyID uuid.UUID, periodStart time.Time) (*entities.UsageRecord, error)
}
