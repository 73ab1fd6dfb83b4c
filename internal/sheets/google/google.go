// Package google appends trip and expense rows to a Google
// spreadsheet using a service account. The spreadsheet is an
// append-only export; the SQLite database stays the source of truth.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	tripsSheet    string
	expensesSheet string
}

var _ sheets.RecordWriter = (*Client)(nil)

// Config carries everything needed to reach the spreadsheet. Exactly
// one of CredentialsFile or CredentialsJSON must be set.
type Config struct {
	SpreadsheetID   string
	TripsSheet      string
	ExpensesSheet   string
	CredentialsFile string
	CredentialsJSON string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if cfg.TripsSheet == "" || cfg.ExpensesSheet == "" {
		return nil, errors.New("missing sheet names")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		tripsSheet:    cfg.TripsSheet,
		expensesSheet: cfg.ExpensesSheet,
	}, nil
}

func loadCredentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("missing service account credentials")
}

// AppendTrip adds one row to the trips sheet and returns the updated
// range as the row reference.
func (c *Client) AppendTrip(ctx context.Context, t core.Trip) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	row := []any{
		t.Date.String(),
		t.StartTime,
		t.EndTime,
		t.Fare.Amount(),
		t.Tip.Amount(),
		t.DistanceKm,
		string(t.PaymentMethod),
		t.Notes,
	}
	return c.appendRow(ctx, c.tripsSheet, row)
}

// AppendExpense adds one row to the expenses sheet and returns the
// updated range as the row reference.
func (c *Client) AppendExpense(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	row := []any{
		e.Date.String(),
		e.Amount.Amount(),
		string(e.Category),
		e.Description,
		e.ReceiptRef,
		e.FuelVolumeL,
	}
	return c.appendRow(ctx, c.expensesSheet, row)
}

func (c *Client) appendRow(ctx context.Context, sheet string, row []any) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", sheet)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", sheet, err)
	}
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		return resp.Updates.UpdatedRange, nil
	}
	return rng, nil
}
