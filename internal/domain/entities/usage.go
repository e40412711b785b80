package entities

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord aggregates request counts per (owner, key, billing period).
// The period is a UTC calendar month held as a half-open interval:
// PeriodStart is the first instant of the month, PeriodEnd the first
// instant of the next month (exclusive). Counters never decrease.
type UsageRecord struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	ApiKeyID         uuid.UUID `json:"apiKeyId"`
	PeriodStart      time.Time `json:"periodStart"`
	PeriodEnd        time.Time `json:"periodEnd"`
	RequestCount     int64     `json:"requestCount"`
	TransactionCount int64     `json:"transactionCount"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BillingPeriod returns the half-open UTC calendar-month window containing t.
func BillingPeriod(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}
