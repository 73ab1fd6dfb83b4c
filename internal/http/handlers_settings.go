package http

import (
	"net/http"

	"github.com/MarkoB19/TaxiTracker/internal/core"
)

type settingsPayload struct {
	Currency     *string `json:"currency"`
	DistanceUnit *string `json:"distance_unit"`
	VolumeUnit   *string `json:"volume_unit"`
}

type settingsResponse struct {
	Currency     string `json:"currency"`
	DistanceUnit string `json:"distance_unit"`
	VolumeUnit   string `json:"volume_unit"`
}

func toSettingsResponse(s core.Settings) settingsResponse {
	return settingsResponse{
		Currency:     string(s.Currency),
		DistanceUnit: string(s.DistanceUnit),
		VolumeUnit:   string(s.VolumeUnit),
	}
}

func (p settingsPayload) toUpdate() core.SettingsUpdate {
	var u core.SettingsUpdate
	if p.Currency != nil {
		c := core.Currency(*p.Currency)
		u.Currency = &c
	}
	if p.DistanceUnit != nil {
		d := core.DistanceUnit(*p.DistanceUnit)
		u.DistanceUnit = &d
	}
	if p.VolumeUnit != nil {
		v := core.VolumeUnit(*p.VolumeUnit)
		u.VolumeUnit = &v
	}
	return u
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.settings.Update(r.Context(), payload.toUpdate())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(updated))
}
