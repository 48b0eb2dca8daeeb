package services

import (
	"context"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
	"bikerental/internal/repositories"
)

// AvailabilityService answers which bikes can be booked for a date range. Read-only.
type AvailabilityService struct {
	Bikes BikeStore
}

func (s AvailabilityService) bikes() BikeStore {
	if s.Bikes != nil {
		return s.Bikes
	}
	return repositories.BikeRepository{}
}

// FindAvailable returns bikes switched on and free of overlapping reservations, by id.
func (s AvailabilityService) FindAvailable(ctx context.Context, from, to domain.Date) ([]models.Bike, error) {
	rng, err := domain.NewDateRange(from, to)
	if err != nil {
		return nil, err
	}
	bikes, err := s.bikes().ListAvailable(ctx, rng)
	if err != nil {
		return nil, asDomainErr("failed to load available bikes", err)
	}
	return bikes, nil
}
