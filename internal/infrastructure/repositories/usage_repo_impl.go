package repositories

import (
	"context"
	"errors"
	"time"

	"fraud-radar.backend/internal/domain/entities"
	domainerrors "fraud-radar.backend/internal/domain/errors"
	"fraud-radar.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsageRepository implements per-period usage counters
type UsageRepository struct {
	db *gorm.DB
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// Increment is a single conditional upsert: insert counters=1 for a new
// (user, key, period) tuple, or increment both counters in place. Concurrent
// callers for the same period must each land exactly one increment, so this
// is never a read-then-write.
func (r *UsageRepository) Increment(ctx context.Context, userID, apiKeyID uuid.UUID, periodStart, periodEnd, now time.Time) error {
	rec := &models.UsageRecord{
		ID:               uuid.New(),
		UserID:           userID,
		ApiKeyID:         apiKeyID,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		RequestCount:     1,
		TransactionCount: 1,
		UpdatedAt:        now,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "api_key_id"}, {Name: "period_start"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":     gorm.Expr("usage_records.request_count + 1"),
			"transaction_count": gorm.Expr("usage_records.transaction_count + 1"),
			"updated_at":        now,
		}),
	}).Create(rec).Error
}

// FindByUserID lists a user's usage records, newest period first
func (r *UsageRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.UsageRecord, error) {
	var ms []models.UsageRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period_start DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	records := make([]*entities.UsageRecord, 0, len(ms))
	for i := range ms {
		records = append(records, r.toEntity(&ms[i]))
	}
	return records, nil
}

// FindByPeriod fetches the single record for a (user, key, period) tuple
func (r *UsageRepository) FindByPeriod(ctx context.Context, userID, apiKeyID uuid.UUID, periodStart time.Time) (*entities.UsageRecord, error) {
	var m models.UsageRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND api_key_id = ? AND period_start = ?", userID, apiKeyID, periodStart).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *UsageRepository) toEntity(m *models.UsageRecord) *entities.UsageRecord {
	return &entities.UsageRecord{
		ID:               m.ID,
		UserID:           m.UserID,
		ApiKeyID:         m.ApiKeyID,
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		RequestCount:     m.RequestCount,
		TransactionCount: m.TransactionCount,
		UpdatedAt:        m.UpdatedAt,
	}
}
