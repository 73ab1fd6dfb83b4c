// Package http exposes the JSON API: record CRUD, settings, summaries
// and breakdown stats.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/middleware/ratelimit"
	"github.com/MarkoB19/TaxiTracker/internal/middleware/security"
	"github.com/MarkoB19/TaxiTracker/internal/middleware/trace"
	"github.com/MarkoB19/TaxiTracker/internal/services"
)

type Server struct {
	http.Server

	trips     *services.TripService
	expenses  *services.ExpenseService
	settings  *services.SettingsService
	summaries *services.SummaryService
	logger    *log.Logger

	tracer       *trace.Middleware
	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, trips *services.TripService, expenses *services.ExpenseService, settings *services.SettingsService, summaries *services.SummaryService, logger *log.Logger) *Server {
	s := &Server{
		trips:       trips,
		expenses:    expenses,
		settings:    settings,
		summaries:   summaries,
		logger:      logger.WithComponent(log.ComponentHTTP),
		tracer:      trace.NewMiddleware(logger, extractClientIP),
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("POST /api/trips", s.handleCreateTrip)
	mux.HandleFunc("GET /api/trips", s.handleListTrips)
	mux.HandleFunc("GET /api/trips/{id}", s.handleGetTrip)
	mux.HandleFunc("PATCH /api/trips/{id}", s.handleUpdateTrip)
	mux.HandleFunc("DELETE /api/trips/{id}", s.handleDeleteTrip)

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PATCH /api/settings", s.handleUpdateSettings)

	mux.HandleFunc("GET /api/summary/daily", s.handleDailySummary)
	mux.HandleFunc("GET /api/summary/weekly", s.handleWeeklySummary)
	mux.HandleFunc("GET /api/summary/monthly", s.handleMonthlySummary)

	mux.HandleFunc("GET /api/stats/categories", s.handleCategoryStats)
	mux.HandleFunc("GET /api/stats/payment-methods", s.handlePaymentStats)
	mux.HandleFunc("GET /api/stats/hours", s.handleHourlyStats)
	mux.HandleFunc("GET /api/stats/weekdays", s.handleWeekdayStats)
	mux.HandleFunc("GET /api/stats/fuel", s.handleFuelStats)

	limit := s.rateLimiter.Middleware(extractClientIP, nil)
	hardened := security.Headers(security.DefaultHeadersConfig(), limit(mux))
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(hardened),
	}
	return s
}

// Shutdown stops the server and its background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// extractClientIP resolves the client address, preferring proxy
// headers over the socket peer.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if first, _, found := strings.Cut(ip, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(ip)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Storage is opened before the server starts, so readiness only
	// needs a cheap read to prove the connection is alive.
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if _, err := s.settings.Get(ctx); err != nil {
		s.logger.ErrorContext(r.Context(), "readiness check failed", log.FieldError, err)
		writeError(w, http.StatusServiceUnavailable, "storage not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	requests := s.tracer.GetMetrics()
	limits := s.rateLimiter.GetMetrics()
	writeJSON(w, http.StatusOK, map[string]int64{
		"total_requests":       requests.TotalRequests,
		"last_duration_ms":     requests.LastDurationMs,
		"rate_limited_hits":    limits.LimitedHits,
		"rate_limited_clients": limits.ClientCount,
	})
}
