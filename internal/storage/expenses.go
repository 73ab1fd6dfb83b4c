package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/log"
)

const expenseColumns = `id, date, amount_cents, category, description,
	receipt_ref, fuel_volume_l`

// CreateExpense inserts an expense and returns it with its assigned ID.
func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, amount_cents, category, description,
		                       receipt_ref, fuel_volume_l)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Date.String(), e.Amount.Cents, string(e.Category), e.Description,
		e.ReceiptRef, e.FuelVolumeL)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense id: %w", err)
	}
	e.ID = id

	r.logger.InfoContext(ctx, "expense saved",
		log.FieldOperation, log.OpCreate,
		log.FieldExpenseID, e.ID,
		log.FieldDate, e.Date.String(),
		log.FieldAmountCents, e.Amount.Cents,
		log.FieldCategory, e.Category)
	return e, nil
}

// GetExpense fetches one expense by ID.
func (r *Repository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// ListExpenses returns all expenses, newest date first.
func (r *Repository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return r.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, id DESC`)
}

// ListExpensesByDateRange returns expenses whose date falls in
// [start, end], oldest first.
func (r *Repository) ListExpensesByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return r.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		  WHERE date >= ? AND date <= ?
		  ORDER BY date, id`,
		start.String(), end.String())
}

// UpdateExpense overwrites an expense, bumps its version and requeues
// it for sync.
func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses
		    SET date = ?, amount_cents = ?, category = ?, description = ?,
		        receipt_ref = ?, fuel_volume_l = ?,
		        version = version + 1, synced = 0, sync_error = 0,
		        updated_at = CURRENT_TIMESTAMP
		  WHERE id = ?`,
		e.Date.String(), e.Amount.Cents, string(e.Category), e.Description,
		e.ReceiptRef, e.FuelVolumeL, e.ID)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	r.logger.InfoContext(ctx, "expense updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldExpenseID, e.ID)
	return nil
}

// DeleteExpense removes an expense.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	r.logger.InfoContext(ctx, "expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldExpenseID, id)
	return nil
}

// ExpenseVersion returns the current sync version of an expense.
func (r *Repository) ExpenseVersion(ctx context.Context, id int64) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, `SELECT version FROM expenses WHERE id = ?`, id).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("expense version %d: %w", id, err)
	}
	return version, nil
}

// GetPendingSyncExpenses returns expenses not yet replicated to the
// spreadsheet, oldest first.
func (r *Repository) GetPendingSyncExpenses(ctx context.Context, limit int) ([]PendingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version, created_at FROM expenses
		  WHERE synced = 0 AND sync_error = 0
		  ORDER BY created_at LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync expenses: %w", err)
	}
	defer rows.Close()
	return scanPending(rows)
}

// MarkExpenseSynced records a successful spreadsheet append, unless the
// expense changed again since version was read.
func (r *Repository) MarkExpenseSynced(ctx context.Context, id, version int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET synced = 1, sync_error = 0, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND version = ?`, id, version)
	if err != nil {
		return fmt.Errorf("mark expense synced %d: %w", id, err)
	}
	return nil
}

// MarkExpenseSyncError flags an expense whose spreadsheet append failed.
func (r *Repository) MarkExpenseSyncError(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET sync_error = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark expense sync error %d: %w", id, err)
	}
	r.logger.WarnContext(ctx, "expense marked with sync error", log.FieldExpenseID, id)
	return nil
}

func (r *Repository) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e        core.Expense
		dateStr  string
		category string
	)
	err := row.Scan(&e.ID, &dateStr, &e.Amount.Cents, &category,
		&e.Description, &e.ReceiptRef, &e.FuelVolumeL)
	if err != nil {
		return core.Expense{}, err
	}
	e.Category = core.ExpenseCategory(category)
	e.Date, err = core.ParseDate(dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	return e, nil
}
