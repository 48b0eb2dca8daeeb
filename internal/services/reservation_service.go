package services

import (
	"context"
	"fmt"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
	"bikerental/internal/repositories"
	"bikerental/internal/utils"
)

// ReservationService books and cancels reservations.
//
// Callers pass an identity already checked by the auth middleware; ownership of a
// reservation is not verified here.
type ReservationService struct {
	Ledger       Ledger
	Reservations ReservationStore
	RequestID    string
}

func (s ReservationService) ledger() Ledger {
	if s.Ledger != nil {
		return s.Ledger
	}
	return repositories.MySQLLedger{}
}

func (s ReservationService) reservations() ReservationStore {
	if s.Reservations != nil {
		return s.Reservations
	}
	return repositories.ReservationRepository{}
}

// Book reserves bikeID for userID over [from, to].
//
// The overlap check and the insert run under the bike's row lock, so of two
// concurrent conflicting bookings exactly one succeeds and the other gets
// UnavailableError. A bike switched off by a manager is unavailable too.
func (s ReservationService) Book(ctx context.Context, userID, bikeID domain.ID, from, to domain.Date) (models.Reservation, error) {
	rng, err := domain.NewDateRange(from, to)
	if err != nil {
		return models.Reservation{}, err
	}
	if bikeID <= 0 {
		return models.Reservation{}, domain.NotFoundError{Resource: "bike"}
	}

	utils.LogEvent(s.RequestID, "reservation", "book", fmt.Sprintf("start bike_id=%d user_id=%d range=%s", bikeID, userID, rng))

	var created models.Reservation
	err = s.ledger().WithBikeLock(ctx, bikeID, func(tx repositories.LedgerTx) error {
		if !tx.Bike().Available {
			return domain.UnavailableError{BikeID: bikeID, Reason: "bike is switched off"}
		}
		ranges, err := tx.ReservedRanges(ctx)
		if err != nil {
			return asDomainErr("failed to load reservations", err)
		}
		if i := domain.FirstOverlap(ranges, rng); i >= 0 {
			return domain.UnavailableError{BikeID: bikeID, Reason: "already reserved " + ranges[i].String()}
		}
		created, err = tx.InsertReservation(ctx, models.Reservation{
			FromDate: rng.From,
			ToDate:   rng.To,
			BikeID:   bikeID,
			UserID:   userID,
			Rating:   0,
		})
		return asDomainErr("failed to save reservation", err)
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "reservation", "book_error", err.Error())
		return models.Reservation{}, asDomainErr("failed to book bike", err)
	}

	utils.LogEvent(s.RequestID, "reservation", "book_done", fmt.Sprintf("id=%d", created.ID))
	return created, nil
}

// Cancel deletes the reservation. A missing or already cancelled id is NotFound.
func (s ReservationService) Cancel(ctx context.Context, reservationID domain.ID) error {
	if reservationID <= 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	if err := s.reservations().Delete(ctx, reservationID); err != nil {
		utils.LogEvent(s.RequestID, "reservation", "cancel_error", err.Error())
		return asDomainErr("failed to cancel reservation", err)
	}
	utils.LogEvent(s.RequestID, "reservation", "cancel_done", fmt.Sprintf("id=%d", reservationID))
	return nil
}

func (s ReservationService) Get(ctx context.Context, reservationID domain.ID) (models.Reservation, error) {
	res, err := s.reservations().GetByID(ctx, reservationID)
	return res, asDomainErr("failed to load reservation", err)
}

// ListForUser returns the user's reservations with their bikes.
func (s ReservationService) ListForUser(ctx context.Context, userID domain.ID) ([]models.Reservation, error) {
	list, err := s.reservations().ListByUser(ctx, userID)
	return list, asDomainErr("failed to load reservations", err)
}

func (s ReservationService) RentalsByUser(ctx context.Context, userID domain.ID) ([]models.RentalRecord, error) {
	list, err := s.reservations().ListRentalsByUser(ctx, userID)
	return list, asDomainErr("failed to load rentals", err)
}

func (s ReservationService) RentersByBike(ctx context.Context, bikeID domain.ID) ([]models.RenterRecord, error) {
	list, err := s.reservations().ListRentersByBike(ctx, bikeID)
	return list, asDomainErr("failed to load renters", err)
}
