package main

import (
	"fmt"
	"os"

	"github.com/stoicaandrei/monney2/internal/config"
	"github.com/stoicaandrei/monney2/internal/database"
	"github.com/stoicaandrei/monney2/internal/logger"
	"github.com/stoicaandrei/monney2/internal/server"
	"github.com/stoicaandrei/monney2/internal/validator"
)

// @title           Monney API
// @version         1.0
// @description     Monney is a personal finance application: wallets, categorized income and expenses, tags, and a dashboard with daily totals and a spending flow graph.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
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

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	router := server.NewRouter(server.NewServices(dbManager.DB(), appConfig), appConfig)

	log.Infow("Starting Monney API server",
		"port", appConfig.Port,
		"driver", appConfig.DBDriver,
		"dashboard_tz", appConfig.DashboardLocation.String(),
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
