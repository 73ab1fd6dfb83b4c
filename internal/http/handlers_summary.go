package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/MarkoB19/TaxiTracker/internal/analytics"
	"github.com/MarkoB19/TaxiTracker/internal/core"
)

type dailySummaryResponse struct {
	Date               string  `json:"date"`
	TotalIncomeCents   int64   `json:"total_income_cents"`
	TotalExpensesCents int64   `json:"total_expenses_cents"`
	NetProfitCents     int64   `json:"net_profit_cents"`
	TripCount          int     `json:"trip_count"`
	DistanceKm         float64 `json:"distance_km"`
}

type weeklySummaryResponse struct {
	WeekStart          string                 `json:"week_start"`
	WeekEnd            string                 `json:"week_end"`
	TotalIncomeCents   int64                  `json:"total_income_cents"`
	TotalExpensesCents int64                  `json:"total_expenses_cents"`
	NetProfitCents     int64                  `json:"net_profit_cents"`
	TripCount          int                    `json:"trip_count"`
	DistanceKm         float64                `json:"distance_km"`
	Days               []dailySummaryResponse `json:"days"`
}

type monthlySummaryResponse struct {
	Month              string                  `json:"month"`
	Year               int                     `json:"year"`
	TotalIncomeCents   int64                   `json:"total_income_cents"`
	TotalExpensesCents int64                   `json:"total_expenses_cents"`
	NetProfitCents     int64                   `json:"net_profit_cents"`
	TripCount          int                     `json:"trip_count"`
	DistanceKm         float64                 `json:"distance_km"`
	Weeks              []weeklySummaryResponse `json:"weeks"`
}

func toDailyResponse(d analytics.DailySummary) dailySummaryResponse {
	return dailySummaryResponse{
		Date:               d.Date.String(),
		TotalIncomeCents:   d.TotalIncome.Cents,
		TotalExpensesCents: d.TotalExpenses.Cents,
		NetProfitCents:     d.NetProfit.Cents,
		TripCount:          d.TripCount,
		DistanceKm:         d.DistanceKm,
	}
}

func toWeeklyResponse(w analytics.WeeklySummary) weeklySummaryResponse {
	out := weeklySummaryResponse{
		WeekStart:          w.WeekStart.String(),
		WeekEnd:            w.WeekEnd.String(),
		TotalIncomeCents:   w.TotalIncome.Cents,
		TotalExpensesCents: w.TotalExpenses.Cents,
		NetProfitCents:     w.NetProfit.Cents,
		TripCount:          w.TripCount,
		DistanceKm:         w.DistanceKm,
	}
	for _, d := range w.Days {
		out.Days = append(out.Days, toDailyResponse(d))
	}
	return out
}

func toMonthlyResponse(m analytics.MonthlySummary) monthlySummaryResponse {
	out := monthlySummaryResponse{
		Month:              m.Month,
		Year:               m.Year,
		TotalIncomeCents:   m.TotalIncome.Cents,
		TotalExpensesCents: m.TotalExpenses.Cents,
		NetProfitCents:     m.NetProfit.Cents,
		TripCount:          m.TripCount,
		DistanceKm:         m.DistanceKm,
	}
	for _, w := range m.Weeks {
		out.Weeks = append(out.Weeks, toWeeklyResponse(w))
	}
	return out
}

// dateParam reads the date query parameter, defaulting to today.
func dateParam(r *http.Request) (core.Date, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := time.Now().UTC()
		return core.NewDate(now.Year(), int(now.Month()), now.Day()), nil
	}
	return core.ParseDate(raw)
}

// parseDateRange reads the from/to query parameters. Both are
// required together.
func parseDateRange(r *http.Request) (core.Date, core.Date, error) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw == "" || toRaw == "" {
		return core.Date{}, core.Date{}, errors.New("both from and to are required")
	}
	from, err := core.ParseDate(fromRaw)
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	to, err := core.ParseDate(toRaw)
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	if to.Before(from.Time) {
		return core.Date{}, core.Date{}, errors.New("to is before from")
	}
	return from, to, nil
}

// statsRange resolves the reporting window for stats endpoints: an
// explicit from/to pair, or the current calendar month.
func statsRange(r *http.Request) (core.Date, core.Date, error) {
	if r.URL.Query().Has("from") || r.URL.Query().Has("to") {
		return parseDateRange(r)
	}
	now := time.Now().UTC()
	first := core.NewDate(now.Year(), int(now.Month()), 1)
	last := core.NewDate(now.Year(), int(now.Month())+1, 1).AddDays(-1)
	return first, last, nil
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := s.summaries.Daily(r.Context(), day)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDailyResponse(summary))
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := s.summaries.Weekly(r.Context(), day)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeeklyResponse(summary))
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := s.summaries.Monthly(r.Context(), day)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthlyResponse(summary))
}

type categoryShareResponse struct {
	Category    string  `json:"category"`
	AmountCents int64   `json:"amount_cents"`
	Percentage  float64 `json:"percentage"`
}

type paymentShareResponse struct {
	Method      string  `json:"method"`
	AmountCents int64   `json:"amount_cents"`
	TripCount   int     `json:"trip_count"`
	Percentage  float64 `json:"percentage"`
}

type hourActivityResponse struct {
	Hour        int     `json:"hour"`
	TripCount   int     `json:"trip_count"`
	IncomeCents int64   `json:"income_cents"`
	Percentage  float64 `json:"percentage"`
}

type weekdayActivityResponse struct {
	Day         string  `json:"day"`
	DayIndex    int     `json:"day_index"`
	TripCount   int     `json:"trip_count"`
	IncomeCents int64   `json:"income_cents"`
	Percentage  float64 `json:"percentage"`
}

type fuelReportResponse struct {
	Efficiency      float64 `json:"efficiency"`
	CostPerDistance float64 `json:"cost_per_distance"`
	DistanceUnit    string  `json:"distance_unit"`
	VolumeUnit      string  `json:"volume_unit"`
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := statsRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	shares, err := s.summaries.Categories(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]categoryShareResponse, 0, len(shares))
	for _, c := range shares {
		out = append(out, categoryShareResponse{
			Category:    string(c.Category),
			AmountCents: c.Amount.Cents,
			Percentage:  c.Percentage,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePaymentStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := statsRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	shares, err := s.summaries.PaymentMethods(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]paymentShareResponse, 0, len(shares))
	for _, p := range shares {
		out = append(out, paymentShareResponse{
			Method:      string(p.Method),
			AmountCents: p.Amount.Cents,
			TripCount:   p.TripCount,
			Percentage:  p.Percentage,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHourlyStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := statsRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hours, err := s.summaries.Hours(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]hourActivityResponse, 0, len(hours))
	for _, h := range hours {
		out = append(out, hourActivityResponse{
			Hour:        h.Hour,
			TripCount:   h.TripCount,
			IncomeCents: h.Income.Cents,
			Percentage:  h.Percentage,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleWeekdayStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := statsRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	days, err := s.summaries.Weekdays(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]weekdayActivityResponse, 0, len(days))
	for _, d := range days {
		out = append(out, weekdayActivityResponse{
			Day:         d.Day,
			DayIndex:    d.DayIndex,
			TripCount:   d.TripCount,
			IncomeCents: d.Income.Cents,
			Percentage:  d.Percentage,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFuelStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := statsRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.summaries.Fuel(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fuelReportResponse{
		Efficiency:      report.Efficiency,
		CostPerDistance: report.CostPerDistance,
		DistanceUnit:    string(report.DistanceUnit),
		VolumeUnit:      string(report.VolumeUnit),
	})
}
