// Package cli holds the initialization shared by cmd/taxitracker and
// cmd/taxitracker-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/MarkoB19/TaxiTracker/internal/amqp"
	"github.com/MarkoB19/TaxiTracker/internal/config"
	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

// SetupLogger builds the component logger and installs it as the slog
// default.
func SetupLogger(component string) *log.Logger {
	logger := log.New(component)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. Missing files are
// fine; production configures through real environment variables.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and exits the process when
// it is unusable.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStorage opens the SQLite repository and runs migrations, exiting
// the process on failure.
func InitStorage(logger *log.Logger, dbPath string) *storage.Repository {
	repo, err := storage.NewRepository(dbPath, logger)
	if err != nil {
		logger.Error("failed to initialize storage", log.FieldError, err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}

// InitAMQP connects the sync message client when sync is enabled.
// Returns nil when it is not; a broker that is down at startup is a
// fatal error rather than a silent degradation.
func InitAMQP(logger *log.Logger, cfg *config.Config) *amqp.Client {
	if !cfg.SyncEnabled() {
		logger.Info("sheet sync disabled, records stay local")
		return nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	return client
}
