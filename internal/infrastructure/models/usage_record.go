package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord has a composite unique key on (user_id, api_key_id,
// period_start); period_end is the exclusive upper bound of the window.
type UsageRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_period"`
	ApiKeyID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_period"`
	PeriodStart      time.Time `gorm:"not null;uniqueIndex:idx_usage_period"`
	PeriodEnd        time.Time `gorm:"not null"`
	RequestCount     int64     `gorm:"not null;default:0"`
	TransactionCount int64     `gorm:"not null;default:0"`
	UpdatedAt        time.Time
}
