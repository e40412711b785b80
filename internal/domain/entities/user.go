package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns API keys and scored transactions.
// Accounts are provisioned out of band (see cmd/apikey-gen); the scoring
// path never creates or mutates them.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}
