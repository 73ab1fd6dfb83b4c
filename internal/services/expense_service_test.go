package services

import (
	"context"
	"errors"
	"testing"

	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

func validExpense() core.Expense {
	return core.Expense{
		Date:        core.NewDate(2025, 1, 15),
		Amount:      core.Money{Cents: 4580},
		Category:    core.Fuel,
		Description: "Full tank",
		FuelVolumeL: 38.5,
	}
}

func TestExpenseService_Create(t *testing.T) {
	repo, logger := testStorage(t)
	service := NewExpenseService(repo, nil, logger)
	ctx := context.Background()

	created, err := service.Create(ctx, validExpense())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected created expense to have an ID")
	}

	got, err := service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != created {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, created)
	}
}

func TestExpenseService_CreateRejectsInvalid(t *testing.T) {
	repo, logger := testStorage(t)
	service := NewExpenseService(repo, nil, logger)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*core.Expense)
		wantErr error
	}{
		{"negative amount", func(e *core.Expense) { e.Amount = core.Money{Cents: -1} }, core.ErrInvalidAmount},
		{"unknown category", func(e *core.Expense) { e.Category = "lottery" }, core.ErrUnknownCategory},
		{"empty description", func(e *core.Expense) { e.Description = "" }, core.ErrEmptyDescription},
		{"volume on non-fuel", func(e *core.Expense) { e.Category = core.Parking }, core.ErrInvalidVolume},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			expense := validExpense()
			tt.mutate(&expense)
			if _, err := service.Create(ctx, expense); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpenseService_Update(t *testing.T) {
	repo, logger := testStorage(t)
	service := NewExpenseService(repo, nil, logger)
	ctx := context.Background()

	created, err := service.Create(ctx, validExpense())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	amount := core.Money{Cents: 5000}
	updated, err := service.Update(ctx, created.ID, core.ExpenseUpdate{Amount: &amount})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Amount.Cents != 5000 {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Description != "Full tank" {
		t.Errorf("untouched description changed: %q", updated.Description)
	}
}

func TestExpenseService_UpdateRejectsInvalidMerge(t *testing.T) {
	repo, logger := testStorage(t)
	service := NewExpenseService(repo, nil, logger)
	ctx := context.Background()

	created, err := service.Create(ctx, validExpense())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Switching a fuel purchase to parking while it still carries a
	// volume must be rejected as a whole.
	parking := core.Parking
	if _, err := service.Update(ctx, created.ID, core.ExpenseUpdate{Category: &parking}); !errors.Is(err, core.ErrInvalidVolume) {
		t.Fatalf("expected ErrInvalidVolume, got %v", err)
	}

	got, err := service.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Category != core.Fuel {
		t.Errorf("rejected patch modified stored expense: %s", got.Category)
	}
}

func TestExpenseService_Delete(t *testing.T) {
	repo, logger := testStorage(t)
	service := NewExpenseService(repo, nil, logger)
	ctx := context.Background()

	created, err := service.Create(ctx, validExpense())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := service.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := service.Get(ctx, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
