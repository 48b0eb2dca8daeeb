package services

import (
	"context"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
	"bikerental/internal/repositories"
)

// BikeStore is the bike half of the persistence collaborator.
type BikeStore interface {
	List(ctx context.Context) ([]models.Bike, error)
	ListAvailable(ctx context.Context, rng domain.DateRange) ([]models.Bike, error)
	GetByID(ctx context.Context, id domain.ID) (models.Bike, error)
	Create(ctx context.Context, b models.Bike) (models.Bike, error)
	Update(ctx context.Context, id domain.ID, u models.BikeUpdate) error
	Delete(ctx context.Context, id domain.ID) error
}

// ReservationStore covers reservation reads and the unconditional delete used by cancel.
type ReservationStore interface {
	GetByID(ctx context.Context, id domain.ID) (models.Reservation, error)
	Delete(ctx context.Context, id domain.ID) error
	ListByUser(ctx context.Context, userID domain.ID) ([]models.Reservation, error)
	ListRentalsByUser(ctx context.Context, userID domain.ID) ([]models.RentalRecord, error)
	ListRentersByBike(ctx context.Context, bikeID domain.ID) ([]models.RenterRecord, error)
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id domain.ID) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, id domain.ID, username, passwordHash, role string) error
	Delete(ctx context.Context, id domain.ID) error
}

// Ledger runs fn atomically while holding bikeID's write lock. Bookings and rating
// updates on the same bike are serialized through it.
type Ledger interface {
	WithBikeLock(ctx context.Context, bikeID domain.ID, fn func(tx repositories.LedgerTx) error) error
}

var (
	_ BikeStore        = repositories.BikeRepository{}
	_ ReservationStore = repositories.ReservationRepository{}
	_ UserStore        = repositories.UserRepository{}
	_ Ledger           = repositories.MySQLLedger{}
)

// asDomainErr keeps domain errors as they are and hides everything else behind InternalError.
func asDomainErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case domain.IsNotFound(err), domain.IsValidation(err), domain.IsConflict(err),
		domain.IsUnavailable(err), domain.IsUnauthorized(err), domain.IsInternal(err):
		return err
	}
	return domain.InternalError{Msg: msg, Err: err}
}
