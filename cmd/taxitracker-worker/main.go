package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MarkoB19/TaxiTracker/internal/amqp"
	"github.com/MarkoB19/TaxiTracker/internal/cli"
	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/sheets/google"
	"github.com/MarkoB19/TaxiTracker/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if !cfg.SyncEnabled() {
		logger.Error("sync is disabled (AMQP_URL not set), nothing for the worker to do")
		os.Exit(1)
	}

	repo := cli.InitStorage(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetsClient, err := google.New(ctx, google.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		TripsSheet:      cfg.GoogleTripSheet,
		ExpensesSheet:   cfg.GoogleExpenseSheet,
		CredentialsFile: cfg.GoogleCredentialsFile,
		CredentialsJSON: cfg.GoogleCredentialsJSON,
	})
	if err != nil {
		logger.Error("failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	amqpClient := cli.InitAMQP(logger, cfg)
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, sheetsClient, logger, cfg.SyncBatchSize)

	// Drain whatever accumulated while the worker was down.
	if err := syncWorker.StartupSyncCheck(ctx); err != nil {
		logger.Error("startup sync check failed", log.FieldError, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := amqpClient.ConsumeRecordSync(ctx, func(msg *amqp.RecordSyncMessage) error {
			return syncWorker.HandleSyncMessage(ctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	// Periodic backstop for messages lost between publisher and broker.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := syncWorker.ProcessPendingRecords(ctx); err != nil {
					logger.Error("periodic sync failed", log.FieldError, err)
				}
			}
		}
	})

	logger.Info("worker started",
		log.FieldOperation, log.OpStartup,
		log.FieldBatchSize, cfg.SyncBatchSize,
		"sync_interval", cfg.SyncInterval.String())

	if err := g.Wait(); err != nil {
		logger.Error("worker exited with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("worker stopped", log.FieldOperation, log.OpShutdown)
}
