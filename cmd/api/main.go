package main

import (
	"fmt"
	"os"

	"ledgerbook/internal/config"
	"ledgerbook/internal/database"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/seed"
	"ledgerbook/internal/server"
	"ledgerbook/internal/validator"
)

// @title           Ledgerbook API
// @version         1.0
// @description     Double-entry bookkeeping: journal postings, books, ledgers, statements and year-end adjustments.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()

	if appConfig.SeedDefaults {
		chart, err := seed.Default()
		if err != nil {
			return fmt.Errorf("failed to load chart of accounts: %w", err)
		}
		if _, err := seed.Apply(db, chart); err != nil {
			return fmt.Errorf("failed to seed chart of accounts: %w", err)
		}
	}

	svc, err := server.NewServices(db, appConfig, nil)
	if err != nil {
		return err
	}

	validator.Register()
	router := server.NewRouter(svc, appConfig, nil)

	if appConfig.AuthDisabled {
		log.Warn("Authentication is disabled; every request runs as anonymous")
	}
	log.Infof("Starting ledgerbook server on port %s (driver %s)", appConfig.Port, dbConfig.Driver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
