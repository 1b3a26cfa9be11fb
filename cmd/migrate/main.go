package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"storefront-backend/internal/config"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/pkg/logger"
)

const usage = "usage: migrate up|down|version"

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		logger.Error("migrate failed", err)
		os.Exit(1)
	}
}

func run(command string) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	migrator, err := database.NewMigrator(dbConfig.DSN())
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch command {
	case "up":
		return migrator.Up()
	case "down":
		if err := migrator.Down(); err != nil {
			return err
		}
		logger.Info("[MIGRATE] all migrations rolled back", nil)
		return nil
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q (%s)", command, usage)
	}
}
