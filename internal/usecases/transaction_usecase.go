package usecases

import (
	"context"
	"errors"

	"fraud-radar.backend/internal/domain/entities"
	domainerrors "fraud-radar.backend/internal/domain/errors"
	"fraud-radar.backend/internal/domain/repositories"
	"fraud-radar.backend/pkg/utils"
	"github.com/google/uuid"
)

// TransactionUsecase serves owner-scoped, read-only transaction queries
// for the dashboard layer. Pass-through reads; ownership scoping is the
// only invariant enforced here.
type TransactionUsecase struct {
	txRepo repositories.TransactionRepository
}

func NewTransactionUsecase(txRepo repositories.TransactionRepository) *TransactionUsecase {
	return &TransactionUsecase{txRepo: txRepo}
}

// ListTransactions lists the caller's transactions newest first. An
// unknown risk_level value is rejected rather than silently ignored.
func (u *TransactionUsecase) ListTransactions(ctx context.Context, userID uuid.UUID, riskLevel string, limit, offset int) ([]*entities.Transaction, utils.PageMeta, error) {
	if riskLevel != "" && !entities.ValidRiskLevel(riskLevel) {
		return nil, utils.PageMeta{}, domainerrors.BadRequest("invalid risk_level: must be low, medium or high")
	}

	params := utils.NormalizePage(limit, offset)
	txs, total, err := u.txRepo.FindByUserID(ctx, userID, repositories.TransactionFilter{
		RiskLevel: riskLevel,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return txs, utils.NewPageMeta(params, total), nil
}

// GetTransaction fetches one transaction the caller owns. A record owned
// by someone else is indistinguishable from a missing one.
func (u *TransactionUsecase) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*entities.Transaction, error) {
	tx, err := u.txRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("transaction not found")
		}
		return nil, err
	}
	if tx.UserID != userID {
		return nil, domainerrors.NotFound("transaction not found")
	}
	return tx, nil
}
