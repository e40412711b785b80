package usecases

import (
	"context"
	"time"

	"fraud-radar.backend/internal/domain/entities"
	"fraud-radar.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// UsageUsecase maintains per-period usage counters. The billing period is
// a UTC calendar month, half-open: a request at the last instant of a month
// and one at the first instant of the next land in two distinct records.
type UsageUsecase struct {
	usageRepo repositories.UsageRepository
}

func NewUsageUsecase(usageRepo repositories.UsageRepository) *UsageUsecase {
	return &UsageUsecase{usageRepo: usageRepo}
}

// Record counts one scored request against the (owner, key) pair for the
// period containing occurredAt. The underlying store merge is atomic, so
// concurrent requests within the same period each land exactly once.
func (u *UsageUsecase) Record(ctx context.Context, userID, apiKeyID uuid.UUID, occurredAt time.Time) error {
	start, end := entities.BillingPeriod(occurredAt)
	return u.usageRepo.Increment(ctx, userID, apiKeyID, start, end, occurredAt.UTC())
}

// ListByUser returns a user's usage records across periods, newest first
func (u *UsageUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.UsageRecord, error) {
	return u.usageRepo.FindByUserID(ctx, userID)
}
