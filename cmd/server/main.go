package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rsahay/tdsbook-backend/config"
	"github.com/rsahay/tdsbook-backend/internal/app/controller"
	"github.com/rsahay/tdsbook-backend/internal/app/repository"
	"github.com/rsahay/tdsbook-backend/internal/app/service"
	"github.com/rsahay/tdsbook-backend/internal/db"
	"github.com/rsahay/tdsbook-backend/internal/router"
	"github.com/rsahay/tdsbook-backend/internal/storage"
	"github.com/rsahay/tdsbook-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting TDSBOOK Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Document storage
	var documents storage.DocumentStore
	switch cfg.Upload.Driver {
	case "s3":
		documents = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	default:
		documents, err = storage.NewLocalStorage(cfg.Upload.Dir)
		if err != nil {
			logger.Fatal("Failed to initialize local document storage", err)
		}
	}

	// Initialize repositories
	deducteeRepo := repository.NewDeducteeRepository(db.GetDB())
	transactionRepo := repository.NewTransactionRepository(db.GetDB())
	challanRepo := repository.NewChallanRepository(db.GetDB())

	// Initialize services
	transactionService := service.NewTransactionService(transactionRepo, db.GetDB())
	challanService := service.NewChallanService(challanRepo, transactionRepo, db.GetDB())

	// Initialize controllers
	transactionController := controller.NewTransactionController(transactionService, documents, cfg.Upload.MaxSizeMB)
	deducteeController := controller.NewDeducteeController(deducteeRepo)
	challanController := controller.NewChallanController(challanService)
	exportController := controller.NewExportController(transactionService)

	// Setup router
	r := router.NewRouter(
		transactionController,
		deducteeController,
		challanController,
		exportController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
