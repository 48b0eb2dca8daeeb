package services

import (
	"context"
	"fmt"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
	"bikerental/internal/repositories"
	"bikerental/internal/utils"
)

// RatingService records a renter's rating and refreshes the bike's aggregate.
type RatingService struct {
	Ledger       Ledger
	Reservations ReservationStore
	RequestID    string
}

func (s RatingService) ledger() Ledger {
	if s.Ledger != nil {
		return s.Ledger
	}
	return repositories.MySQLLedger{}
}

func (s RatingService) reservations() ReservationStore {
	if s.Reservations != nil {
		return s.Reservations
	}
	return repositories.ReservationRepository{}
}

// SubmitRating overwrites the reservation's rating and recomputes the bike's rating
// from all of its reservations in the same transaction. Returns the updated bike.
func (s RatingService) SubmitRating(ctx context.Context, reservationID domain.ID, rating int) (models.Bike, error) {
	if err := domain.ValidateRating(rating); err != nil {
		return models.Bike{}, err
	}
	res, err := s.reservations().GetByID(ctx, reservationID)
	if err != nil {
		return models.Bike{}, asDomainErr("failed to load reservation", err)
	}

	utils.LogEvent(s.RequestID, "rating", "submit", fmt.Sprintf("start reservation_id=%d bike_id=%d rating=%d", res.ID, res.BikeID, rating))

	var bike models.Bike
	err = s.ledger().WithBikeLock(ctx, res.BikeID, func(tx repositories.LedgerTx) error {
		if err := tx.SetReservationRating(ctx, res.ID, rating); err != nil {
			return asDomainErr("failed to save rating", err)
		}
		ratings, err := tx.BikeRatings(ctx)
		if err != nil {
			return asDomainErr("failed to load ratings", err)
		}
		agg := domain.AggregateRating(ratings)
		if err := tx.SetBikeRating(ctx, agg); err != nil {
			return asDomainErr("failed to update bike rating", err)
		}
		bike = tx.Bike()
		bike.Rating = agg
		return nil
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "rating", "submit_error", err.Error())
		return models.Bike{}, asDomainErr("failed to submit rating", err)
	}

	utils.LogEvent(s.RequestID, "rating", "submit_done", fmt.Sprintf("bike_id=%d rating=%.2f", bike.ID, bike.Rating))
	return bike, nil
}
