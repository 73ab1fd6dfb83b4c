package http

import (
	"net/http"

	"github.com/MarkoB19/TaxiTracker/internal/core"
)

type expensePayload struct {
	Date        *string  `json:"date"`
	AmountCents *int64   `json:"amount_cents"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	ReceiptRef  *string  `json:"receipt_ref"`
	FuelVolumeL *float64 `json:"fuel_volume_l"`
}

type expenseResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	AmountCents int64   `json:"amount_cents"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ReceiptRef  string  `json:"receipt_ref"`
	FuelVolumeL float64 `json:"fuel_volume_l"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Date:        e.Date.String(),
		AmountCents: e.Amount.Cents,
		Category:    string(e.Category),
		Description: e.Description,
		ReceiptRef:  e.ReceiptRef,
		FuelVolumeL: e.FuelVolumeL,
	}
}

func (p expensePayload) toUpdate() (core.ExpenseUpdate, error) {
	var u core.ExpenseUpdate
	if p.Date != nil {
		d, err := core.ParseDate(*p.Date)
		if err != nil {
			return core.ExpenseUpdate{}, err
		}
		u.Date = &d
	}
	if p.AmountCents != nil {
		u.Amount = &core.Money{Cents: *p.AmountCents}
	}
	if p.Category != nil {
		c := core.ExpenseCategory(*p.Category)
		u.Category = &c
	}
	u.Description = p.Description
	u.ReceiptRef = p.ReceiptRef
	u.FuelVolumeL = p.FuelVolumeL
	return u, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var payload expensePayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch, err := payload.toUpdate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.expenses.Create(r.Context(), patch.Apply(core.Expense{}))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.summaries.Invalidate()
	writeJSON(w, http.StatusCreated, toExpenseResponse(created))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var (
		expenses []core.Expense
		err      error
	)
	if r.URL.Query().Has("from") || r.URL.Query().Has("to") {
		start, end, rangeErr := parseDateRange(r)
		if rangeErr != nil {
			writeError(w, http.StatusBadRequest, rangeErr.Error())
			return
		}
		expenses, err = s.expenses.ListByDateRange(r.Context(), start, end)
	} else {
		expenses, err = s.expenses.List(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	expense, err := s.expenses.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload expensePayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch, err := payload.toUpdate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.expenses.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.summaries.Invalidate()
	writeJSON(w, http.StatusOK, toExpenseResponse(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.expenses.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.summaries.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
