package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/finvoice/finvoice/internal/auth"
	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/domain/user"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/postgres"
	"github.com/finvoice/finvoice/internal/repository"
	"github.com/finvoice/finvoice/internal/types"
)

const schemaFile = "migrations/schema.sql"

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	seedUser := flag.String("seed-user", "", "Seed an initial dashboard user as email:password")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		logger.Fatalf("Failed to read schema file: %v", err)
	}

	if *dryRun {
		fmt.Println(string(schema))
		return
	}

	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	logger.Infow("applying schema", "file", schemaFile)
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		logger.Fatalf("Failed to apply schema: %v", err)
	}
	logger.Info("schema applied")

	if *seedUser != "" {
		if err := seed(ctx, cfg, db, logger, *seedUser); err != nil {
			logger.Fatalf("Failed to seed user: %v", err)
		}
	}
}

func seed(ctx context.Context, cfg *config.Configuration, db *postgres.DB, logger *logger.Logger, emailPassword string) error {
	email, password, ok := splitCredentials(emailPassword)
	if !ok {
		return fmt.Errorf("seed-user must be in email:password form")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	repo := repository.NewUserRepository(db, logger)
	u := &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:      "Admin",
		Email:     email,
		Password:  hashed,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	if err := repo.Create(ctx, u); err != nil {
		return err
	}

	logger.Infow("seeded dashboard user", "email", email)
	return nil
}

func splitCredentials(s string) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], i > 0 && i < len(s)-1
		}
	}
	return "", "", false
}
