package http

import (
	"net/http"
	"strconv"

	"github.com/MarkoB19/TaxiTracker/internal/core"
)

// tripPayload is the wire shape for creates and patches. Every field
// is a pointer so a patch can distinguish "absent" from "zero".
type tripPayload struct {
	Date          *string  `json:"date"`
	StartTime     *string  `json:"start_time"`
	EndTime       *string  `json:"end_time"`
	FareCents     *int64   `json:"fare_cents"`
	TipCents      *int64   `json:"tip_cents"`
	DistanceKm    *float64 `json:"distance_km"`
	PaymentMethod *string  `json:"payment_method"`
	Notes         *string  `json:"notes"`
}

type tripResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	FareCents     int64   `json:"fare_cents"`
	TipCents      int64   `json:"tip_cents"`
	TotalCents    int64   `json:"total_cents"`
	DistanceKm    float64 `json:"distance_km"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

func toTripResponse(t core.Trip) tripResponse {
	return tripResponse{
		ID:            t.ID,
		Date:          t.Date.String(),
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		FareCents:     t.Fare.Cents,
		TipCents:      t.Tip.Cents,
		TotalCents:    t.Total().Cents,
		DistanceKm:    t.DistanceKm,
		PaymentMethod: string(t.PaymentMethod),
		Notes:         t.Notes,
	}
}

// toUpdate converts the payload into a patch. A malformed date fails
// here; everything else is validated on the merged record.
func (p tripPayload) toUpdate() (core.TripUpdate, error) {
	var u core.TripUpdate
	if p.Date != nil {
		d, err := core.ParseDate(*p.Date)
		if err != nil {
			return core.TripUpdate{}, err
		}
		u.Date = &d
	}
	u.StartTime = p.StartTime
	u.EndTime = p.EndTime
	if p.FareCents != nil {
		u.Fare = &core.Money{Cents: *p.FareCents}
	}
	if p.TipCents != nil {
		u.Tip = &core.Money{Cents: *p.TipCents}
	}
	u.DistanceKm = p.DistanceKm
	if p.PaymentMethod != nil {
		m := core.PaymentMethod(*p.PaymentMethod)
		u.PaymentMethod = &m
	}
	u.Notes = p.Notes
	return u, nil
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var payload tripPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch, err := payload.toUpdate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), patch.Apply(core.Trip{}))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.summaries.Invalidate()
	writeJSON(w, http.StatusCreated, toTripResponse(created))
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	var (
		trips []core.Trip
		err   error
	)
	if r.URL.Query().Has("from") || r.URL.Query().Has("to") {
		start, end, rangeErr := parseDateRange(r)
		if rangeErr != nil {
			writeError(w, http.StatusBadRequest, rangeErr.Error())
			return
		}
		trips, err = s.trips.ListByDateRange(r.Context(), start, end)
	} else {
		trips, err = s.trips.List(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	trip, err := s.trips.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload tripPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch, err := payload.toUpdate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.trips.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.summaries.Invalidate()
	writeJSON(w, http.StatusOK, toTripResponse(updated))
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.summaries.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
