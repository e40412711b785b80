package entities

import (
	"time"

	"github.com/google/uuid"
)

// LiveKeyPrefix is the fixed, non-secret prefix every live API key starts
// with. Credentials without it are rejected before any store lookup.
const LiveKeyPrefix = "sk_live_"

// ApiKey represents an API key credential. Only the SHA-256 digest of the
// plaintext is ever stored; KeyPrefix is the displayable head of the key.
type ApiKey struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"keyPrefix"`
	KeyHash    string     `json:"-"`
	IsActive   bool       `json:"isActive"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CreateApiKeyInput represents input for minting a new key
type CreateApiKeyInput struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateApiKeyResponse carries the plaintext key exactly once, at mint time.
type CreateApiKeyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ApiKey    string    `json:"apiKey"`
	KeyPrefix string    `json:"keyPrefix"`
	CreatedAt time.Time `json:"createdAt"`
}
