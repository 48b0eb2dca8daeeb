package repositories

import (
	"context"
	"database/sql"

	intconfig "bikerental/internal/config"
	intdb "bikerental/internal/db"
	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
)

// LedgerTx is the unit of work the booking core runs while holding one bike's lock.
type LedgerTx interface {
	Bike() models.Bike
	ReservedRanges(ctx context.Context) ([]domain.DateRange, error)
	InsertReservation(ctx context.Context, res models.Reservation) (models.Reservation, error)
	SetReservationRating(ctx context.Context, reservationID domain.ID, rating int) error
	BikeRatings(ctx context.Context) ([]int, error)
	SetBikeRating(ctx context.Context, rating float64) error
}

// MySQLLedger serializes per-bike writes with SELECT ... FOR UPDATE on the bike row.
type MySQLLedger struct {
	DB *sql.DB
}

func (l MySQLLedger) db() *sql.DB {
	if l.DB != nil {
		return l.DB
	}
	return intconfig.DB
}

// WithBikeLock opens a transaction, locks bikeID and runs fn. NotFound when the bike
// does not exist. fn's error rolls everything back.
func (l MySQLLedger) WithBikeLock(ctx context.Context, bikeID domain.ID, fn func(tx LedgerTx) error) error {
	return intdb.WithTx(ctx, l.db(), func(tx *sql.Tx) error {
		bikes := BikeRepository{DB: tx}
		bike, err := bikes.LockByID(ctx, bikeID)
		if err != nil {
			return err
		}
		return fn(mysqlLedgerTx{
			bike:         bike,
			bikes:        bikes,
			reservations: ReservationRepository{DB: tx},
		})
	})
}

type mysqlLedgerTx struct {
	bike         models.Bike
	bikes        BikeRepository
	reservations ReservationRepository
}

func (t mysqlLedgerTx) Bike() models.Bike { return t.bike }

func (t mysqlLedgerTx) ReservedRanges(ctx context.Context) ([]domain.DateRange, error) {
	return t.reservations.RangesByBike(ctx, t.bike.ID)
}

func (t mysqlLedgerTx) InsertReservation(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	res.BikeID = t.bike.ID
	return t.reservations.Create(ctx, res)
}

func (t mysqlLedgerTx) SetReservationRating(ctx context.Context, reservationID domain.ID, rating int) error {
	return t.reservations.SetRating(ctx, reservationID, rating)
}

func (t mysqlLedgerTx) BikeRatings(ctx context.Context) ([]int, error) {
	return t.reservations.RatingsByBike(ctx, t.bike.ID)
}

func (t mysqlLedgerTx) SetBikeRating(ctx context.Context, rating float64) error {
	return t.bikes.SetRating(ctx, t.bike.ID, rating)
}
