package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/services"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithHandler("test", slog.NewTextHandler(io.Discard, nil))
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"), logger)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	trips := services.NewTripService(repo, nil, logger)
	expenses := services.NewExpenseService(repo, nil, logger)
	settings := services.NewSettingsService(repo, logger)
	summaries := services.NewSummaryService(repo, logger, time.Minute, nil)

	s := NewServer(":0", trips, expenses, settings, summaries, logger)
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func tripBody() map[string]any {
	return map[string]any{
		"date":           "2025-01-15",
		"start_time":     "08:30",
		"end_time":       "09:15",
		"fare_cents":     2550,
		"tip_cents":      500,
		"distance_km":    14.0,
		"payment_method": "card",
	}
}

func expenseBody() map[string]any {
	return map[string]any{
		"date":          "2025-01-15",
		"amount_cents":  4580,
		"category":      "fuel",
		"description":   "Full tank",
		"fuel_volume_l": 38.5,
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := testServer(t)

	if rec := doJSON(t, s, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("healthz status %d, want 200", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Errorf("readyz status %d, want 200", rec.Code)
	}
}

func TestTripLifecycle(t *testing.T) {
	s := testServer(t)

	created := doJSON(t, s, http.MethodPost, "/api/trips", tripBody())
	if created.Code != http.StatusCreated {
		t.Fatalf("create status %d, body %s", created.Code, created.Body.String())
	}
	var trip tripResponse
	decodeInto(t, created, &trip)
	if trip.ID == 0 || trip.TotalCents != 3050 {
		t.Fatalf("unexpected created trip: %+v", trip)
	}

	got := doJSON(t, s, http.MethodGet, "/api/trips/1", nil)
	if got.Code != http.StatusOK {
		t.Fatalf("get status %d", got.Code)
	}

	patched := doJSON(t, s, http.MethodPatch, "/api/trips/1", map[string]any{"tip_cents": 800})
	if patched.Code != http.StatusOK {
		t.Fatalf("patch status %d, body %s", patched.Code, patched.Body.String())
	}
	decodeInto(t, patched, &trip)
	if trip.TipCents != 800 || trip.FareCents != 2550 {
		t.Errorf("patch result wrong: %+v", trip)
	}

	list := doJSON(t, s, http.MethodGet, "/api/trips", nil)
	var trips []tripResponse
	decodeInto(t, list, &trips)
	if len(trips) != 1 {
		t.Errorf("expected 1 trip in list, got %d", len(trips))
	}

	deleted := doJSON(t, s, http.MethodDelete, "/api/trips/1", nil)
	if deleted.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", deleted.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/api/trips/1", nil); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status %d, want 404", rec.Code)
	}
}

func TestTripValidationStatuses(t *testing.T) {
	s := testServer(t)

	cases := []struct {
		name     string
		mutate   func(map[string]any)
		wantCode int
	}{
		{"unknown payment method", func(b map[string]any) { b["payment_method"] = "crypto" }, http.StatusUnprocessableEntity},
		{"negative fare", func(b map[string]any) { b["fare_cents"] = -1 }, http.StatusUnprocessableEntity},
		{"bad time shape", func(b map[string]any) { b["start_time"] = "8:30" }, http.StatusUnprocessableEntity},
		{"malformed date", func(b map[string]any) { b["date"] = "15/01/2025" }, http.StatusBadRequest},
		{"impossible date", func(b map[string]any) { b["date"] = "2025-02-30" }, http.StatusBadRequest},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			body := tripBody()
			tt.mutate(body)
			rec := doJSON(t, s, http.MethodPost, "/api/trips", body)
			if rec.Code != tt.wantCode {
				t.Errorf("status %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	// Unknown JSON fields are rejected outright.
	body := tripBody()
	body["bogus"] = true
	if rec := doJSON(t, s, http.MethodPost, "/api/trips", body); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status %d, want 400", rec.Code)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	s := testServer(t)

	created := doJSON(t, s, http.MethodPost, "/api/expenses", expenseBody())
	if created.Code != http.StatusCreated {
		t.Fatalf("create status %d, body %s", created.Code, created.Body.String())
	}
	var expense expenseResponse
	decodeInto(t, created, &expense)
	if expense.Category != "fuel" || expense.AmountCents != 4580 {
		t.Fatalf("unexpected created expense: %+v", expense)
	}

	// Fuel volume is only valid on the fuel category.
	body := expenseBody()
	body["category"] = "parking"
	if rec := doJSON(t, s, http.MethodPost, "/api/expenses", body); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("volume on parking status %d, want 422", rec.Code)
	}

	patched := doJSON(t, s, http.MethodPatch, "/api/expenses/1", map[string]any{"amount_cents": 5000})
	if patched.Code != http.StatusOK {
		t.Fatalf("patch status %d", patched.Code)
	}
	decodeInto(t, patched, &expense)
	if expense.AmountCents != 5000 || expense.Description != "Full tank" {
		t.Errorf("patch result wrong: %+v", expense)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	s := testServer(t)

	got := doJSON(t, s, http.MethodGet, "/api/settings", nil)
	var settings settingsResponse
	decodeInto(t, got, &settings)
	if settings.Currency != "USD" || settings.DistanceUnit != "km" || settings.VolumeUnit != "L" {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	patched := doJSON(t, s, http.MethodPatch, "/api/settings", map[string]any{"currency": "EUR", "distance_unit": "mi"})
	if patched.Code != http.StatusOK {
		t.Fatalf("patch status %d", patched.Code)
	}
	decodeInto(t, patched, &settings)
	if settings.Currency != "EUR" || settings.DistanceUnit != "mi" || settings.VolumeUnit != "L" {
		t.Errorf("patch result wrong: %+v", settings)
	}

	if rec := doJSON(t, s, http.MethodPatch, "/api/settings", map[string]any{"currency": "DOGE"}); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown currency status %d, want 422", rec.Code)
	}
}

func TestSummaryEndpoints(t *testing.T) {
	s := testServer(t)

	if rec := doJSON(t, s, http.MethodPost, "/api/trips", tripBody()); rec.Code != http.StatusCreated {
		t.Fatalf("seed trip failed: %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/expenses", expenseBody()); rec.Code != http.StatusCreated {
		t.Fatalf("seed expense failed: %d", rec.Code)
	}

	daily := doJSON(t, s, http.MethodGet, "/api/summary/daily?date=2025-01-15", nil)
	if daily.Code != http.StatusOK {
		t.Fatalf("daily status %d", daily.Code)
	}
	var day dailySummaryResponse
	decodeInto(t, daily, &day)
	if day.TotalIncomeCents != 3050 || day.TotalExpensesCents != 4580 || day.NetProfitCents != -1530 {
		t.Errorf("daily totals wrong: %+v", day)
	}

	weekly := doJSON(t, s, http.MethodGet, "/api/summary/weekly?date=2025-01-15", nil)
	var week weeklySummaryResponse
	decodeInto(t, weekly, &week)
	if week.WeekStart != "2025-01-12" || week.WeekEnd != "2025-01-18" {
		t.Errorf("week range wrong: %s..%s", week.WeekStart, week.WeekEnd)
	}
	if len(week.Days) != 7 {
		t.Errorf("expected 7 days, got %d", len(week.Days))
	}

	monthly := doJSON(t, s, http.MethodGet, "/api/summary/monthly?date=2025-01-15", nil)
	var month monthlySummaryResponse
	decodeInto(t, monthly, &month)
	if month.Month != "January" || month.Year != 2025 || len(month.Weeks) != 5 {
		t.Errorf("monthly summary wrong: %s %d, %d weeks", month.Month, month.Year, len(month.Weeks))
	}

	if rec := doJSON(t, s, http.MethodGet, "/api/summary/daily?date=not-a-date", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed date status %d, want 400", rec.Code)
	}
}

func TestStatsEndpoints(t *testing.T) {
	s := testServer(t)

	if rec := doJSON(t, s, http.MethodPost, "/api/trips", tripBody()); rec.Code != http.StatusCreated {
		t.Fatalf("seed trip failed: %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/expenses", expenseBody()); rec.Code != http.StatusCreated {
		t.Fatalf("seed expense failed: %d", rec.Code)
	}
	window := "?from=2025-01-01&to=2025-01-31"

	categories := doJSON(t, s, http.MethodGet, "/api/stats/categories"+window, nil)
	var cats []categoryShareResponse
	decodeInto(t, categories, &cats)
	if len(cats) != 9 {
		t.Fatalf("expected 9 category buckets, got %d", len(cats))
	}
	if cats[0].Category != "fuel" || cats[0].Percentage != 100 {
		t.Errorf("fuel should lead with 100%%: %+v", cats[0])
	}

	methods := doJSON(t, s, http.MethodGet, "/api/stats/payment-methods"+window, nil)
	var pays []paymentShareResponse
	decodeInto(t, methods, &pays)
	if len(pays) != 3 || pays[0].Method != "card" {
		t.Errorf("payment breakdown wrong: %+v", pays)
	}

	hours := doJSON(t, s, http.MethodGet, "/api/stats/hours"+window, nil)
	var activity []hourActivityResponse
	decodeInto(t, hours, &activity)
	if len(activity) != 24 || activity[0].Hour != 8 || activity[0].TripCount != 1 {
		t.Errorf("hourly breakdown wrong: %d buckets starting %+v", len(activity), activity[0])
	}

	weekdays := doJSON(t, s, http.MethodGet, "/api/stats/weekdays"+window, nil)
	var byDay []weekdayActivityResponse
	decodeInto(t, weekdays, &byDay)
	if len(byDay) != 7 || byDay[0].Day != "Wednesday" || byDay[0].TripCount != 1 {
		t.Errorf("weekday breakdown wrong: %+v", byDay)
	}

	fuel := doJSON(t, s, http.MethodGet, "/api/stats/fuel"+window, nil)
	var report fuelReportResponse
	decodeInto(t, fuel, &report)
	if report.DistanceUnit != "km" || report.VolumeUnit != "L" {
		t.Errorf("fuel units wrong: %+v", report)
	}

	if rec := doJSON(t, s, http.MethodGet, "/api/stats/categories?from=2025-01-31&to=2025-01-01", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("inverted range status %d, want 400", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)

	doJSON(t, s, http.MethodGet, "/healthz", nil)
	rec := doJSON(t, s, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	var metrics map[string]int64
	decodeInto(t, rec, &metrics)
	if metrics["total_requests"] < 1 {
		t.Errorf("expected at least 1 request counted, got %d", metrics["total_requests"])
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := testServer(t)
	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestExtractClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded single", map[string]string{"X-Forwarded-For": "10.0.0.1"}, "10.0.0.1"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.9"}, "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.2"}, "10.0.0.2"},
		{"remote addr", nil, "192.0.2.1:1234"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := extractClientIP(r); got != tt.want {
				t.Errorf("extractClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
