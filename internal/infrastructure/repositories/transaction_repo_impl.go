package repositories

import (
	"context"
	"errors"
	"time"

	"fraud-radar.backend/internal/domain/entities"
	domainerrors "fraud-radar.backend/internal/domain/errors"
	domainrepos "fraud-radar.backend/internal/domain/repositories"
	"fraud-radar.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TransactionRepository implements append-only transaction persistence
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a scored transaction. The generated ID is written back to
// the entity. There is no update or delete path.
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	shap := make(datatypes.JSONMap, len(tx.ShapValues))
	for k, v := range tx.ShapValues {
		shap[k] = v
	}

	m := &models.Transaction{
		ID:                uuid.New(),
		UserID:            tx.UserID,
		TransactionRef:    tx.TransactionRef.Ptr(),
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		UserEmail:         tx.UserEmail.Ptr(),
		UserIP:            tx.UserIP.Ptr(),
		UserCountry:       tx.UserCountry.Ptr(),
		DeviceFingerprint: tx.DeviceFingerprint.Ptr(),
		PaymentMethod:     tx.PaymentMethod.Ptr(),
		MerchantCategory:  tx.MerchantCategory.Ptr(),
		FraudScore:        tx.FraudScore,
		RiskLevel:         string(tx.RiskLevel),
		Prediction:        string(tx.Prediction),
		ShapValues:        shap,
		ModelVersion:      tx.ModelVersion,
		ProcessingTimeMs:  tx.ProcessingTimeMs,
		CreatedAt:         time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	return nil
}

// FindByID gets a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByUserID lists a user's transactions newest first, with an optional
// risk-level filter and a total count for pagination.
func (r *TransactionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter domainrepos.TransactionFilter) ([]*entities.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.RiskLevel != "" {
		query = query.Where("risk_level = ?", filter.RiskLevel)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Transaction
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(ms))
	for i := range ms {
		txs = append(txs, r.toEntity(&ms[i]))
	}
	return txs, total, nil
}

func (r *TransactionRepository) toEntity(m *models.Transaction) *entities.Transaction {
	shap := make(map[string]float64, len(m.ShapValues))
	for k, v := range m.ShapValues {
		if f, ok := v.(float64); ok {
			shap[k] = f
		}
	}

	return &entities.Transaction{
		ID:                m.ID,
		UserID:            m.UserID,
		TransactionRef:    null.StringFromPtr(m.TransactionRef),
		Amount:            m.Amount,
		Currency:          m.Currency,
		UserEmail:         null.StringFromPtr(m.UserEmail),
		UserIP:            null.StringFromPtr(m.UserIP),
		UserCountry:       null.StringFromPtr(m.UserCountry),
		DeviceFingerprint: null.StringFromPtr(m.DeviceFingerprint),
		PaymentMethod:     null.StringFromPtr(m.PaymentMethod),
		MerchantCategory:  null.StringFromPtr(m.MerchantCategory),
		FraudScore:        m.FraudScore,
		RiskLevel:         entities.RiskLevel(m.RiskLevel),
		Prediction:        entities.Prediction(m.Prediction),
		ShapValues:        shap,
		ModelVersion:      m.ModelVersion,
		ProcessingTimeMs:  m.ProcessingTimeMs,
		CreatedAt:         m.CreatedAt,
	}
}
