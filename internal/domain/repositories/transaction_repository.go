package repositories

import (
	"context"

	"fraud-radar.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// TransactionFilter narrows owner-scoped transaction listings.
type TransactionFilter struct {
	RiskLevel string
	Limit     int
	Offset    int
}

type TransactionRepository interface {
	// Create is append-only; there is no update or delete.
	Create(ctx context.Context, tx *entities.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]*entities.Transaction, int64, error)
}
