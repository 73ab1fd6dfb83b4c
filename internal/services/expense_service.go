package services

import (
	"context"
	"fmt"

	"github.com/MarkoB19/TaxiTracker/internal/amqp"
	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

type ExpenseService struct {
	storage    *storage.Repository
	amqpClient *amqp.Client
	logger     *log.Logger
}

// NewExpenseService wires an expense service. amqpClient may be nil
// when sync is disabled.
func NewExpenseService(store *storage.Repository, amqpClient *amqp.Client, logger *log.Logger) *ExpenseService {
	return &ExpenseService{
		storage:    store,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(log.ComponentExpense),
	}
}

// Create validates and saves an expense, then queues it for sheet
// sync.
func (s *ExpenseService) Create(ctx context.Context, expense core.Expense) (core.Expense, error) {
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := s.storage.CreateExpense(ctx, expense)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publishSync(ctx, created.ID, 1)
	return created, nil
}

func (s *ExpenseService) Get(ctx context.Context, id int64) (core.Expense, error) {
	return s.storage.GetExpense(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx)
}

func (s *ExpenseService) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return s.storage.ListExpensesByDateRange(ctx, start, end)
}

// Update merges a partial edit into the stored expense and validates
// the merged record.
func (s *ExpenseService) Update(ctx context.Context, id int64, patch core.ExpenseUpdate) (core.Expense, error) {
	expense, err := s.storage.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}

	merged := patch.Apply(expense)
	if err := merged.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.storage.UpdateExpense(ctx, merged); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	version, err := s.storage.ExpenseVersion(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read expense version after update",
			log.FieldExpenseID, id, log.FieldError, err)
		return merged, nil
	}
	s.publishSync(ctx, id, version)
	return merged, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	return s.storage.DeleteExpense(ctx, id)
}

func (s *ExpenseService) publishSync(ctx context.Context, id, version int64) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishRecordSync(ctx, amqp.KindExpense, id, version); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish expense sync message",
			log.FieldExpenseID, id, log.FieldError, err)
	}
}
