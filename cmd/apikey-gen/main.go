// Command apikey-gen provisions an owner account and mints a live API key.
// Key management has no self-service surface; operators run this against
// the database directly.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"fraud-radar.backend/internal/config"
	"fraud-radar.backend/internal/domain/entities"
	domainerrors "fraud-radar.backend/internal/domain/errors"
	"fraud-radar.backend/internal/infrastructure/repositories"
	"fraud-radar.backend/internal/usecases"
	"fraud-radar.backend/pkg/crypto"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "owner email (required)")
	name := flag.String("name", "", "owner display name (defaults to email)")
	password := flag.String("password", "", "owner password, only used when the account does not exist yet")
	keyName := flag.String("key-name", "Default Key", "display name for the minted key")
	flag.Parse()

	if *email == "" {
		log.Fatal("missing required flag: -email")
	}
	if *name == "" {
		*name = *email
	}

	if err := run(*email, *name, *password, *keyName); err != nil {
		log.Fatal(err)
	}
}

func run(email, name, password, keyName string) error {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.Database.URL()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	userRepo := repositories.NewUserRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, userRepo)

	ctx := context.Background()

	user, err := userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domainerrors.ErrNotFound) {
		if password == "" {
			return fmt.Errorf("account %s does not exist; pass -password to create it", email)
		}
		hash, hashErr := crypto.HashPassword(password)
		if hashErr != nil {
			return hashErr
		}
		user = &entities.User{Email: email, Name: name, PasswordHash: hash}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		fmt.Printf("Created account %s (%s)\n", email, user.ID)
	} else if err != nil {
		return err
	}

	resp, err := apiKeyUsecase.CreateApiKey(ctx, user.ID, &entities.CreateApiKeyInput{Name: keyName})
	if err != nil {
		return fmt.Errorf("failed to mint api key: %w", err)
	}

	fmt.Println("Minted API key (shown once, store it now):")
	fmt.Printf("API_KEY=%s\n", resp.ApiKey)
	fmt.Printf("KEY_ID=%s\n", resp.ID)
	return nil
}
