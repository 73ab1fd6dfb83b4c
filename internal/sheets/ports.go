package sheets

import (
	"context"

	"github.com/MarkoB19/TaxiTracker/internal/core"
)

// Ports for outbound spreadsheet adapters.
type (
	TripWriter interface {
		AppendTrip(ctx context.Context, t core.Trip) (rowRef string, err error)
	}

	ExpenseWriter interface {
		AppendExpense(ctx context.Context, e core.Expense) (rowRef string, err error)
	}

	// RecordWriter is what the sync worker needs: both record kinds
	// land in the same spreadsheet.
	RecordWriter interface {
		TripWriter
		ExpenseWriter
	}
)
