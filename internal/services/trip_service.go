// Package services orchestrates record operations across SQLite and
// AMQP. Writes always land in SQLite first; the sync message is best
// effort and a publish failure never fails the request.
package services

import (
	"context"
	"fmt"

	"github.com/MarkoB19/TaxiTracker/internal/amqp"
	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

type TripService struct {
	storage    *storage.Repository
	amqpClient *amqp.Client
	logger     *log.Logger
}

// NewTripService wires a trip service. amqpClient may be nil when sync
// is disabled.
func NewTripService(store *storage.Repository, amqpClient *amqp.Client, logger *log.Logger) *TripService {
	return &TripService{
		storage:    store,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(log.ComponentTrip),
	}
}

// Create validates and saves a trip, then queues it for sheet sync.
func (s *TripService) Create(ctx context.Context, trip core.Trip) (core.Trip, error) {
	if err := trip.Validate(); err != nil {
		return core.Trip{}, err
	}

	created, err := s.storage.CreateTrip(ctx, trip)
	if err != nil {
		return core.Trip{}, fmt.Errorf("save trip: %w", err)
	}

	s.publishSync(ctx, created.ID, 1)
	return created, nil
}

func (s *TripService) Get(ctx context.Context, id int64) (core.Trip, error) {
	return s.storage.GetTrip(ctx, id)
}

func (s *TripService) List(ctx context.Context) ([]core.Trip, error) {
	return s.storage.ListTrips(ctx)
}

func (s *TripService) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Trip, error) {
	return s.storage.ListTripsByDateRange(ctx, start, end)
}

// Update merges a partial edit into the stored trip. Validation runs
// on the merged record, so a patch cannot produce an invalid row.
func (s *TripService) Update(ctx context.Context, id int64, patch core.TripUpdate) (core.Trip, error) {
	trip, err := s.storage.GetTrip(ctx, id)
	if err != nil {
		return core.Trip{}, err
	}

	merged := patch.Apply(trip)
	if err := merged.Validate(); err != nil {
		return core.Trip{}, err
	}

	if err := s.storage.UpdateTrip(ctx, merged); err != nil {
		return core.Trip{}, fmt.Errorf("update trip: %w", err)
	}

	version, err := s.storage.TripVersion(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read trip version after update",
			log.FieldTripID, id, log.FieldError, err)
		return merged, nil
	}
	s.publishSync(ctx, id, version)
	return merged, nil
}

func (s *TripService) Delete(ctx context.Context, id int64) error {
	return s.storage.DeleteTrip(ctx, id)
}

func (s *TripService) publishSync(ctx context.Context, id, version int64) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishRecordSync(ctx, amqp.KindTrip, id, version); err != nil {
		// The pending-sync backstop picks the record up later.
		s.logger.ErrorContext(ctx, "failed to publish trip sync message",
			log.FieldTripID, id, log.FieldError, err)
	}
}
