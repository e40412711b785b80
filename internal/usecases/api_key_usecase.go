package usecases

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"fraud-radar.backend/internal/domain/entities"
	domainerrors "fraud-radar.backend/internal/domain/errors"
	"fraud-radar.backend/internal/domain/repositories"
	"fraud-radar.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var apiKeyRandRead = rand.Read

// ApiKeyUsecase authenticates bearer credentials and manages key records.
// Plaintext keys exist only at mint time; lookups go through the SHA-256
// digest.
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
	userRepo   repositories.UserRepository
}

func NewApiKeyUsecase(apiKeyRepo repositories.ApiKeyRepository, userRepo repositories.UserRepository) *ApiKeyUsecase {
	return &ApiKeyUsecase{
		apiKeyRepo: apiKeyRepo,
		userRepo:   userRepo,
	}
}

// Authenticate verifies a raw credential and returns the matching key
// record. The prefix check runs before any store lookup so a malformed
// credential cannot probe the store. On success the last-used time is
// updated off the request path; a failed update never fails the request.
func (u *ApiKeyUsecase) Authenticate(ctx context.Context, rawKey string) (*entities.ApiKey, error) {
	if !strings.HasPrefix(rawKey, entities.LiveKeyPrefix) {
		return nil, domainerrors.ErrMalformedAPIKey
	}

	keyEntity, err := u.apiKeyRepo.FindByKeyHash(ctx, sha256Hex([]byte(rawKey)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnknownAPIKey
		}
		return nil, err
	}
	if !keyEntity.IsActive {
		return nil, domainerrors.ErrRevokedAPIKey
	}

	go func() {
		touchCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.apiKeyRepo.TouchLastUsed(touchCtx, keyEntity.ID, time.Now().UTC()); err != nil {
			logger.Warn(touchCtx, "failed to update api key last-used time",
				zap.String("api_key_id", keyEntity.ID.String()),
				zap.Error(err))
		}
	}()

	return keyEntity, nil
}

// CreateApiKey mints a live key for a user. The plaintext is returned
// exactly once and never stored.
func (u *ApiKeyUsecase) CreateApiKey(ctx context.Context, userID uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}

	raw, err := generateRandomHex(64)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	plaintext := entities.LiveKeyPrefix + raw

	now := time.Now().UTC()
	entity := &entities.ApiKey{
		UserID:    userID,
		Name:      input.Name,
		KeyPrefix: plaintext[:12],
		KeyHash:   sha256Hex([]byte(plaintext)),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.apiKeyRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return &entities.CreateApiKeyResponse{
		ID:        entity.ID,
		Name:      entity.Name,
		ApiKey:    plaintext, // shown once
		KeyPrefix: entity.KeyPrefix,
		CreatedAt: entity.CreatedAt,
	}, nil
}

// ListApiKeys lists a user's keys. Digests are stripped from the result.
func (u *ApiKeyUsecase) ListApiKeys(ctx context.Context, userID uuid.UUID) ([]*entities.ApiKey, error) {
	keys, err := u.apiKeyRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		k.KeyHash = ""
	}
	return keys, nil
}

// RevokeApiKey deactivates a key the caller owns. The record survives so
// the digest stays unique and the usage history keeps its foreign key.
func (u *ApiKeyUsecase) RevokeApiKey(ctx context.Context, userID, keyID uuid.UUID) error {
	key, err := u.apiKeyRepo.FindByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("api key not found")
		}
		return err
	}
	if key.UserID != userID {
		return domainerrors.Forbidden("not owner of api key")
	}
	return u.apiKeyRepo.Deactivate(ctx, keyID)
}

// Helpers

func generateRandomHex(n int) (string, error) {
	bytes := make([]byte, n/2)
	if _, err := apiKeyRandRead(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
