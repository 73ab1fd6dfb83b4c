// Package memory holds an in-process RecordWriter. It backs worker
// tests and local development runs where no spreadsheet is wired up.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/sheets"
)

type Store struct {
	mu       sync.Mutex
	trips    []core.Trip
	expenses []core.Expense
	fail     error
}

var _ sheets.RecordWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// FailWith makes every following append return err; nil restores
// normal operation.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// AppendTrip stores the trip and returns a synthetic row reference.
func (s *Store) AppendTrip(_ context.Context, t core.Trip) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", s.fail
	}
	s.trips = append(s.trips, t)
	return fmt.Sprintf("mem:trips:%d", len(s.trips)), nil
}

// AppendExpense stores the expense and returns a synthetic row reference.
func (s *Store) AppendExpense(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", s.fail
	}
	s.expenses = append(s.expenses, e)
	return fmt.Sprintf("mem:expenses:%d", len(s.expenses)), nil
}

// Trips returns a copy of everything appended so far.
func (s *Store) Trips() []core.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Trip(nil), s.trips...)
}

// Expenses returns a copy of everything appended so far.
func (s *Store) Expenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...)
}
