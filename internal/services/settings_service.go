package services

import (
	"context"
	"fmt"

	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

// SettingsService manages the single row of user preferences.
type SettingsService struct {
	storage *storage.Repository
	logger  *log.Logger
}

func NewSettingsService(store *storage.Repository, logger *log.Logger) *SettingsService {
	return &SettingsService{
		storage: store,
		logger:  logger.WithComponent(log.ComponentSettings),
	}
}

func (s *SettingsService) Get(ctx context.Context) (core.Settings, error) {
	return s.storage.GetSettings(ctx)
}

// Update merges a partial edit into the stored settings. Unknown
// currencies or units reject the whole patch.
func (s *SettingsService) Update(ctx context.Context, patch core.SettingsUpdate) (core.Settings, error) {
	settings, err := s.storage.GetSettings(ctx)
	if err != nil {
		return core.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	merged := patch.Apply(settings)
	if err := merged.Validate(); err != nil {
		return core.Settings{}, err
	}

	if err := s.storage.SaveSettings(ctx, merged); err != nil {
		return core.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.InfoContext(ctx, "settings updated",
		log.FieldOperation, log.OpUpdate,
		"currency", merged.Currency,
		"distance_unit", merged.DistanceUnit,
		"volume_unit", merged.VolumeUnit)
	return merged, nil
}
