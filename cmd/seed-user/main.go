package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/taketwocare/solecare-backend/internal/users"
	"github.com/taketwocare/solecare-backend/pkg/config"
	"github.com/taketwocare/solecare-backend/pkg/db"
	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/enums"
	"github.com/taketwocare/solecare-backend/pkg/logger"
	"github.com/taketwocare/solecare-backend/pkg/security"
)

// seed-user creates a staff account from the command line. There is no
// self-service registration; accounts are provisioned by an operator.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed-user"})

	_ = godotenv.Load()

	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "account password (required)")
	name := flag.String("name", "", "full name (required)")
	role := flag.String("role", "staff", "staff role: staff|admin")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "usage: seed-user -email ... -password ... -name ... [-role staff|admin]")
		os.Exit(1)
	}

	staffRole, err := enums.ParseStaffRole(*role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -role value:", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed-user",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to hash password", err)
		os.Exit(1)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        *email,
		PasswordHash: hash,
		FullName:     *name,
		Role:         staffRole,
		IsActive:     true,
	}

	if err := users.NewRepository(dbClient.DB()).Create(context.Background(), user); err != nil {
		if db.IsUniqueViolation(err, "") {
			fmt.Fprintln(os.Stderr, "a user with that email already exists")
			os.Exit(1)
		}
		logg.Error(context.Background(), "failed to create user", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"user_id": user.ID.String(),
		"role":    staffRole.String(),
	})
	logg.Info(ctx, "staff user created")
}
