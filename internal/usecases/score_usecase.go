package usecases

import (
	"context"
	"time"

	"fraud-radar.backend/internal/domain/entities"
	domainerrors "fraud-radar.backend/internal/domain/errors"
	"fraud-radar.backend/internal/domain/repositories"
	"fraud-radar.backend/internal/metrics"
	"fraud-radar.backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// ScoreUsecase orchestrates the scoring pipeline: validate, score, record,
// meter, respond. The steps run strictly in that order; a transaction is
// never recorded before it is scored and usage is never counted before the
// transaction is durably stored.
type ScoreUsecase struct {
	engine *ScoringEngine
	txRepo repositories.TransactionRepository
	usage  *UsageUsecase
	now    func() time.Time
}

func NewScoreUsecase(engine *ScoringEngine, txRepo repositories.TransactionRepository, usage *UsageUsecase) *ScoreUsecase {
	return &ScoreUsecase{
		engine: engine,
		txRepo: txRepo,
		usage:  usage,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ScoreTransaction runs one scoring request for an authenticated caller.
// A persistence failure aborts the response: the computed score is not
// returned unless the transaction record is durable, so every returned
// transaction_id can be fetched later. A metering failure is logged and
// never surfaced; the meter may under-count on outages but never blocks
// or fails the caller.
func (u *ScoreUsecase) ScoreTransaction(ctx context.Context, userID, apiKeyID uuid.UUID, input *entities.ScoreTransactionInput) (*entities.ScoreTransactionResponse, error) {
	outcome, err := u.engine.Score(input)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	tx := &entities.Transaction{
		UserID:            userID,
		TransactionRef:    optString(input.TransactionRef),
		Amount:            input.Amount,
		Currency:          currency,
		UserEmail:         optString(input.UserEmail),
		UserIP:            optString(input.UserIP),
		UserCountry:       optString(input.UserCountry),
		DeviceFingerprint: optString(input.DeviceFingerprint),
		PaymentMethod:     optString(input.PaymentMethod),
		MerchantCategory:  optString(input.MerchantCategory),
		FraudScore:        outcome.FraudScore,
		RiskLevel:         outcome.RiskLevel,
		Prediction:        outcome.Prediction,
		ShapValues:        outcome.ShapValues,
		ModelVersion:      outcome.ModelVersion,
		ProcessingTimeMs:  outcome.ProcessingTimeMs,
	}
	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, domainerrors.Persistence(err)
	}

	if err := u.usage.Record(ctx, userID, apiKeyID, u.now()); err != nil {
		metrics.MeteringFailuresTotal.Inc()
		logger.Warn(ctx, "usage metering failed",
			zap.String("user_id", userID.String()),
			zap.String("api_key_id", apiKeyID.String()),
			zap.Error(err))
	}

	return &entities.ScoreTransactionResponse{
		TransactionID:    tx.ID,
		FraudScore:       outcome.FraudScore,
		RiskLevel:        outcome.RiskLevel,
		Prediction:       outcome.Prediction,
		ShapValues:       outcome.ShapValues,
		ProcessingTimeMs: outcome.ProcessingTimeMs,
	}, nil
}

func optString(s string) null.String {
	return null.NewString(s, s != "")
}
