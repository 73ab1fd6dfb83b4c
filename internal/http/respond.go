package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps service errors onto HTTP statuses: missing
// records are 404, validation failures 422, anything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDate,
		core.ErrInvalidTime,
		core.ErrInvalidAmount,
		core.ErrInvalidDistance,
		core.ErrInvalidVolume,
		core.ErrUnknownPaymentMethod,
		core.ErrUnknownCategory,
		core.ErrUnknownCurrency,
		core.ErrUnknownUnit,
		core.ErrEmptyDescription,
		core.ErrTextTooLong,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// decodeBody decodes a JSON request body into dst, rejecting unknown
// fields so typos fail loudly instead of silently dropping data.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
