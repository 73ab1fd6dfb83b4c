package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/log"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record ID does not exist.
var ErrNotFound = errors.New("record not found")

// Repository is the single SQLite-backed store for trips, expenses and
// settings. It is the source of truth; the spreadsheet export is a
// replica fed by the sync worker.
type Repository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewRepository(dbPath string, logger *log.Logger) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db:     db,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// PendingRecord is the minimal row shape queued for spreadsheet sync.
type PendingRecord struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// GetSettings returns the single settings row.
func (r *Repository) GetSettings(ctx context.Context) (core.Settings, error) {
	var s core.Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT currency, distance_unit, volume_unit FROM settings WHERE id = 1`,
	).Scan(&s.Currency, &s.DistanceUnit, &s.VolumeUnit)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultSettings(), nil
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// SaveSettings overwrites the single settings row.
func (r *Repository) SaveSettings(ctx context.Context, s core.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE settings
		    SET currency = ?, distance_unit = ?, volume_unit = ?, updated_at = CURRENT_TIMESTAMP
		  WHERE id = 1`,
		string(s.Currency), string(s.DistanceUnit), string(s.VolumeUnit))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	r.logger.InfoContext(ctx, "settings saved",
		log.FieldOperation, log.OpUpdate,
		"currency", s.Currency,
		"distance_unit", s.DistanceUnit,
		"volume_unit", s.VolumeUnit)
	return nil
}
