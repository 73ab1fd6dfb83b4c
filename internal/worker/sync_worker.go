// Package worker replicates locally stored records to the
// spreadsheet. The database write has already happened by the time
// anything here runs; this path only ever retries the export side.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarkoB19/TaxiTracker/internal/amqp"
	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/sheets"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

type SyncWorker struct {
	storage   *storage.Repository
	sheets    sheets.RecordWriter
	logger    *log.Logger
	batchSize int
}

func NewSyncWorker(store *storage.Repository, writer sheets.RecordWriter, logger *log.Logger, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   store,
		sheets:    writer,
		logger:    logger.WithComponent(log.ComponentWorker),
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP.
// A record deleted before the message arrived is not an error; the
// message is simply dropped.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	w.logger.DebugContext(ctx, "processing sync message",
		log.FieldRecordKind, msg.Kind,
		"id", msg.ID,
		"version", msg.Version)

	var err error
	switch msg.Kind {
	case amqp.KindTrip:
		err = w.syncTrip(ctx, msg.ID, msg.Version)
	case amqp.KindExpense:
		err = w.syncExpense(ctx, msg.ID, msg.Version)
	default:
		return fmt.Errorf("unknown record kind %q", msg.Kind)
	}

	if errors.Is(err, storage.ErrNotFound) {
		w.logger.InfoContext(ctx, "record gone before sync, dropping message",
			log.FieldRecordKind, msg.Kind, "id", msg.ID)
		return nil
	}
	return err
}

// ProcessPendingRecords pushes any records that never made it to the
// spreadsheet. This is the backstop for lost AMQP messages.
func (w *SyncWorker) ProcessPendingRecords(ctx context.Context) error {
	if err := w.processPending(ctx, w.batchSize); err != nil {
		return err
	}
	return nil
}

// StartupSyncCheck drains a larger pending backlog once at worker
// startup to recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	w.logger.InfoContext(ctx, "startup sync check", log.FieldOperation, log.OpStartup)
	return w.processPending(ctx, w.batchSize*5)
}

func (w *SyncWorker) processPending(ctx context.Context, limit int) error {
	pendingTrips, err := w.storage.GetPendingSyncTrips(ctx, limit)
	if err != nil {
		return fmt.Errorf("get pending trips: %w", err)
	}
	pendingExpenses, err := w.storage.GetPendingSyncExpenses(ctx, limit)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}
	if len(pendingTrips) == 0 && len(pendingExpenses) == 0 {
		return nil
	}

	w.logger.InfoContext(ctx, "processing pending records",
		"trips", len(pendingTrips),
		"expenses", len(pendingExpenses))

	synced, failed := 0, 0
	for _, p := range pendingTrips {
		if err := w.syncTrip(ctx, p.ID, p.Version); err != nil {
			w.logger.ErrorContext(ctx, "failed to sync trip",
				log.FieldTripID, p.ID, log.FieldError, err)
			failed++
			continue
		}
		synced++
	}
	for _, p := range pendingExpenses {
		if err := w.syncExpense(ctx, p.ID, p.Version); err != nil {
			w.logger.ErrorContext(ctx, "failed to sync expense",
				log.FieldExpenseID, p.ID, log.FieldError, err)
			failed++
			continue
		}
		synced++
	}

	w.logger.InfoContext(ctx, "pending sync completed",
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *SyncWorker) syncTrip(ctx context.Context, id, version int64) error {
	trip, err := w.storage.GetTrip(ctx, id)
	if err != nil {
		return fmt.Errorf("get trip from storage: %w", err)
	}

	ref, err := w.sheets.AppendTrip(ctx, trip)
	if err != nil {
		if markErr := w.storage.MarkTripSyncError(ctx, id); markErr != nil {
			w.logger.ErrorContext(ctx, "failed to mark trip sync error",
				log.FieldTripID, id, log.FieldError, markErr)
		}
		return fmt.Errorf("append trip to sheets: %w", err)
	}

	// A stale version here means the trip changed mid-sync; the mark is
	// a no-op and the newer version stays queued.
	if err := w.storage.MarkTripSynced(ctx, id, version); err != nil {
		w.logger.ErrorContext(ctx, "failed to mark trip as synced",
			log.FieldTripID, id, log.FieldError, err)
	}

	w.logger.InfoContext(ctx, "trip synced",
		log.FieldTripID, id,
		log.FieldSheetsRef, ref)
	return nil
}

func (w *SyncWorker) syncExpense(ctx context.Context, id, version int64) error {
	expense, err := w.storage.GetExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("get expense from storage: %w", err)
	}

	ref, err := w.sheets.AppendExpense(ctx, expense)
	if err != nil {
		if markErr := w.storage.MarkExpenseSyncError(ctx, id); markErr != nil {
			w.logger.ErrorContext(ctx, "failed to mark expense sync error",
				log.FieldExpenseID, id, log.FieldError, markErr)
		}
		return fmt.Errorf("append expense to sheets: %w", err)
	}

	if err := w.storage.MarkExpenseSynced(ctx, id, version); err != nil {
		w.logger.ErrorContext(ctx, "failed to mark expense as synced",
			log.FieldExpenseID, id, log.FieldError, err)
	}

	w.logger.InfoContext(ctx, "expense synced",
		log.FieldExpenseID, id,
		log.FieldSheetsRef, ref)
	return nil
}
