package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"storefront-backend/internal/config"
	"storefront-backend/internal/domains/user/model"
	userRepo "storefront-backend/internal/domains/user/repository"
	userService "storefront-backend/internal/domains/user/service"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"
)

const usage = "usage: admin create <username> <email> <password>"

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	if len(os.Args) != 5 || os.Args[1] != "create" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	req := model.RegisterRequest{Username: os.Args[2], Email: os.Args[3], Password: os.Args[4]}
	if err := req.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := createAdmin(req); err != nil {
		logger.Error("create admin failed", err)
		os.Exit(1)
	}
}

func createAdmin(req model.RegisterRequest) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Close()

	ttl := time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
	svc := userService.NewUserService(
		userRepo.NewPostgresRepository(db.Pool),
		jwt.NewManager(cfg.JWT.Secret, ttl),
		ttl,
		cfg.Auth.BcryptCost,
	)

	user, err := svc.CreateAdmin(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("admin %s created (id=%s)\n", user.Username, user.ID)
	return nil
}
