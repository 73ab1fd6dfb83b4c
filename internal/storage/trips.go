package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/log"
)

const tripColumns = `id, date, start_time, end_time, fare_cents, tip_cents,
	distance_km, payment_method, notes`

// CreateTrip inserts a trip and returns it with its assigned ID.
func (r *Repository) CreateTrip(ctx context.Context, t core.Trip) (core.Trip, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO trips (date, start_time, end_time, fare_cents, tip_cents,
		                    distance_km, payment_method, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Date.String(), t.StartTime, t.EndTime, t.Fare.Cents, t.Tip.Cents,
		t.DistanceKm, string(t.PaymentMethod), t.Notes)
	if err != nil {
		return core.Trip{}, fmt.Errorf("create trip: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Trip{}, fmt.Errorf("create trip id: %w", err)
	}
	t.ID = id

	r.logger.InfoContext(ctx, "trip saved",
		log.FieldOperation, log.OpCreate,
		log.FieldTripID, t.ID,
		log.FieldDate, t.Date.String(),
		log.FieldAmountCents, t.Total().Cents,
		log.FieldPaymentMethod, t.PaymentMethod)
	return t, nil
}

// GetTrip fetches one trip by ID.
func (r *Repository) GetTrip(ctx context.Context, id int64) (core.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Trip{}, ErrNotFound
	}
	if err != nil {
		return core.Trip{}, fmt.Errorf("get trip %d: %w", id, err)
	}
	return t, nil
}

// ListTrips returns all trips, newest date first.
func (r *Repository) ListTrips(ctx context.Context) ([]core.Trip, error) {
	return r.queryTrips(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY date DESC, start_time DESC, id DESC`)
}

// ListTripsByDateRange returns trips whose date falls in [start, end],
// oldest first. The TEXT date column sorts correctly because dates are
// stored as YYYY-MM-DD.
func (r *Repository) ListTripsByDateRange(ctx context.Context, start, end core.Date) ([]core.Trip, error) {
	return r.queryTrips(ctx,
		`SELECT `+tripColumns+` FROM trips
		  WHERE date >= ? AND date <= ?
		  ORDER BY date, start_time, id`,
		start.String(), end.String())
}

// UpdateTrip overwrites a trip, bumps its version and requeues it for
// sync.
func (r *Repository) UpdateTrip(ctx context.Context, t core.Trip) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trips
		    SET date = ?, start_time = ?, end_time = ?, fare_cents = ?, tip_cents = ?,
		        distance_km = ?, payment_method = ?, notes = ?,
		        version = version + 1, synced = 0, sync_error = 0,
		        updated_at = CURRENT_TIMESTAMP
		  WHERE id = ?`,
		t.Date.String(), t.StartTime, t.EndTime, t.Fare.Cents, t.Tip.Cents,
		t.DistanceKm, string(t.PaymentMethod), t.Notes, t.ID)
	if err != nil {
		return fmt.Errorf("update trip %d: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	r.logger.InfoContext(ctx, "trip updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldTripID, t.ID)
	return nil
}

// DeleteTrip removes a trip.
func (r *Repository) DeleteTrip(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	r.logger.InfoContext(ctx, "trip deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTripID, id)
	return nil
}

// TripVersion returns the current sync version of a trip.
func (r *Repository) TripVersion(ctx context.Context, id int64) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, `SELECT version FROM trips WHERE id = ?`, id).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("trip version %d: %w", id, err)
	}
	return version, nil
}

// GetPendingSyncTrips returns trips not yet replicated to the
// spreadsheet, oldest first.
func (r *Repository) GetPendingSyncTrips(ctx context.Context, limit int) ([]PendingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version, created_at FROM trips
		  WHERE synced = 0 AND sync_error = 0
		  ORDER BY created_at LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync trips: %w", err)
	}
	defer rows.Close()
	return scanPending(rows)
}

// MarkTripSynced records a successful spreadsheet append, unless the
// trip changed again since version was read.
func (r *Repository) MarkTripSynced(ctx context.Context, id, version int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE trips SET synced = 1, sync_error = 0, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND version = ?`, id, version)
	if err != nil {
		return fmt.Errorf("mark trip synced %d: %w", id, err)
	}
	return nil
}

// MarkTripSyncError flags a trip whose spreadsheet append failed.
func (r *Repository) MarkTripSyncError(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE trips SET sync_error = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark trip sync error %d: %w", id, err)
	}
	r.logger.WarnContext(ctx, "trip marked with sync error", log.FieldTripID, id)
	return nil
}

func (r *Repository) queryTrips(ctx context.Context, query string, args ...any) ([]core.Trip, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer rows.Close()

	var trips []core.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (core.Trip, error) {
	var (
		t       core.Trip
		dateStr string
		method  string
	)
	err := row.Scan(&t.ID, &dateStr, &t.StartTime, &t.EndTime,
		&t.Fare.Cents, &t.Tip.Cents, &t.DistanceKm, &method, &t.Notes)
	if err != nil {
		return core.Trip{}, err
	}
	t.PaymentMethod = core.PaymentMethod(method)
	t.Date, err = core.ParseDate(dateStr)
	if err != nil {
		return core.Trip{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	return t, nil
}

func scanPending(rows *sql.Rows) ([]PendingRecord, error) {
	var pending []PendingRecord
	for rows.Next() {
		var p PendingRecord
		if err := rows.Scan(&p.ID, &p.Version, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending record: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}
