package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/itinerary"
	"github.com/wayfarerhq/wayfarer-api/internal/repository"
	"go.uber.org/zap"
)

const tripDateLayout = "2006-01-02"

// tripService implements TripService. Generation is delegated to the
// itinerary generator; saved trips are owned documents and only their owner
// can read or delete them.
type tripService struct {
	tripRepo  repository.TripRepository
	generator itinerary.Generator
	logger    *zap.Logger
}

// NewTripService creates a new trip service.
func NewTripService(tripRepo repository.TripRepository, generator itinerary.Generator, logger *zap.Logger) TripService {
	return &tripService{
		tripRepo:  tripRepo,
		generator: generator,
		logger:    logger,
	}
}

func (s *tripService) Generate(ctx context.Context, req *dto.GenerateTripRequest) (*itinerary.Plan, error) {
	start, end, err := parseTripDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	plan, err := s.generator.Generate(ctx, itinerary.Request{
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Interests:   req.Interests,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate itinerary: %w", err)
	}
	return plan, nil
}

func (s *tripService) Save(ctx context.Context, ownerID string, req *dto.SaveTripRequest) (*domain.Trip, error) {
	oid, err := parseObjectID(ownerID)
	if err != nil {
		return nil, err
	}

	start, end, err := parseTripDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	days := make([]domain.TripDay, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, domain.TripDay{
			Day:        d.Day,
			Title:      d.Title,
			Activities: d.Activities,
		})
	}

	trip := &domain.Trip{
		OwnerID:     oid,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Interests:   req.Interests,
		Days:        days,
		Notes:       req.Notes,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}
	return trip, nil
}

func (s *tripService) List(ctx context.Context, ownerID string) ([]*domain.Trip, error) {
	oid, err := parseObjectID(ownerID)
	if err != nil {
		return nil, err
	}

	trips, err := s.tripRepo.GetByOwner(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}

func (s *tripService) Get(ctx context.Context, id, ownerID string) (*domain.Trip, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundOr(err, "Trip not found")
	}
	// Other users' trips are indistinguishable from missing ones.
	if trip.OwnerID.Hex() != ownerID {
		return nil, apperr.NotFound("Trip not found")
	}
	return trip, nil
}

func (s *tripService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return err
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	if _, err := s.tripRepo.Delete(ctx, oid); err != nil {
		return notFoundOr(err, "Trip not found")
	}
	return nil
}

func parseTripDates(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(tripDateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("startDate must be formatted as YYYY-MM-DD")
	}
	end, err := time.Parse(tripDateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("endDate must be formatted as YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperr.Validation("endDate must not be before startDate")
	}
	return start, end, nil
}
