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
)

// ApiKeyRepository implements API key data operations
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Create creates a new API key record
func (r *ApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	m := &models.ApiKey{
		ID:        uuid.New(),
		UserID:    apiKey.UserID,
		Name:      apiKey.Name,
		KeyPrefix: apiKey.KeyPrefix,
		KeyHash:   apiKey.KeyHash,
		IsActive:  apiKey.IsActive,
		CreatedAt: apiKey.CreatedAt,
		UpdatedAt: apiKey.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	apiKey.ID = m.ID
	return nil
}

// FindByKeyHash looks up a key by the digest of its plaintext. Exact match
// only; the secret is never searched by prefix.
func (r *ApiKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByUserID lists all keys belonging to a user, newest first
func (r *ApiKeyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error) {
	var ms []models.ApiKey
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.ApiKey, 0, len(ms))
	for i := range ms {
		keys = append(keys, r.toEntity(&ms[i]))
	}
	return keys, nil
}

// FindByID gets an API key by ID
func (r *ApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// TouchLastUsed updates the last-used timestamp. Last-writer-wins; callers
// treat failures as lost telemetry, not errors.
func (r *ApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ?", id).
		Update("last_used_at", usedAt).Error
}

// Deactivate revokes a key. The record is kept so the digest stays unique.
func (r *ApiKeyRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ApiKeyRepository) toEntity(m *models.ApiKey) *entities.ApiKey {
	return &entities.ApiKey{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		KeyPrefix:  m.KeyPrefix,
		KeyHash:    m.KeyHash,
		IsActive:   m.IsActive,
		LastUsedAt: m.LastUsedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
