package repositories

import (
	"context"

	intdb "bikerental/internal/db"
	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
)

const reservationColumns = `id, from_date, to_date, bike_id, user_id, rating`

// ReservationRepository wraps DB access for the reservations table.
type ReservationRepository struct {
	DB intdb.Querier
}

func scanReservation(row interface{ Scan(...any) error }) (models.Reservation, error) {
	var r models.Reservation
	err := row.Scan(&r.ID, &r.FromDate, &r.ToDate, &r.BikeID, &r.UserID, &r.Rating)
	return r, err
}

func (r ReservationRepository) GetByID(ctx context.Context, id domain.ID) (models.Reservation, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.Reservation{}, err
	}
	res, err := scanReservation(db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Reservation{}, notFound("reservation", err)
	}
	return res, nil
}

// Create inserts the reservation as given; overlap checks belong to the caller's tx.
func (r ReservationRepository) Create(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	db, err := pick(r.DB)
	if err != nil {
		return res, err
	}
	out, err := db.ExecContext(ctx,
		`INSERT INTO reservations (from_date, to_date, bike_id, user_id, rating) VALUES (?, ?, ?, ?, ?)`,
		res.FromDate, res.ToDate, res.BikeID, res.UserID, res.Rating)
	if err != nil {
		return res, err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return res, err
	}
	res.ID = domain.ID(id)
	return res, nil
}

func (r ReservationRepository) Delete(ctx context.Context, id domain.ID) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	out, err := db.ExecContext(ctx, `DELETE FROM reservations WHERE id=?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(out, "reservation")
}

func (r ReservationRepository) SetRating(ctx context.Context, id domain.ID, rating int) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	out, err := db.ExecContext(ctx, `UPDATE reservations SET rating=? WHERE id=?`, rating, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(out, "reservation")
}

// RangesByBike lists the booked date ranges of a bike, oldest first.
func (r ReservationRepository) RangesByBike(ctx context.Context, bikeID domain.ID) ([]domain.DateRange, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT from_date, to_date FROM reservations WHERE bike_id=? ORDER BY from_date, id`, bikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.DateRange{}
	for rows.Next() {
		var rng domain.DateRange
		if err := rows.Scan(&rng.From, &rng.To); err != nil {
			return nil, err
		}
		out = append(out, rng)
	}
	return out, rows.Err()
}

func (r ReservationRepository) RatingsByBike(ctx context.Context, bikeID domain.ID) ([]int, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT rating FROM reservations WHERE bike_id=?`, bikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListByUser returns the user's reservations with their bike embedded.
func (r ReservationRepository) ListByUser(ctx context.Context, userID domain.ID) ([]models.Reservation, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.from_date, r.to_date, r.bike_id, r.user_id, r.rating,
			b.id, b.model, b.color, b.location, b.rating, b.available
		FROM reservations r
		JOIN bikes b ON b.id = r.bike_id
		WHERE r.user_id=?
		ORDER BY r.from_date, r.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		var b models.Bike
		if err := rows.Scan(
			&res.ID, &res.FromDate, &res.ToDate, &res.BikeID, &res.UserID, &res.Rating,
			&b.ID, &b.Model, &b.Color, &b.Location, &b.Rating, &b.Available,
		); err != nil {
			return nil, err
		}
		res.Bike = &b
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r ReservationRepository) ListRentalsByUser(ctx context.Context, userID domain.ID) ([]models.RentalRecord, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT b.id, b.model, b.color, r.from_date, r.to_date
		FROM reservations r
		JOIN bikes b ON b.id = r.bike_id
		WHERE r.user_id=?
		ORDER BY r.from_date, r.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RentalRecord{}
	for rows.Next() {
		var rec models.RentalRecord
		if err := rows.Scan(&rec.BikeID, &rec.Model, &rec.Color, &rec.FromDate, &rec.ToDate); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r ReservationRepository) ListRentersByBike(ctx context.Context, bikeID domain.ID) ([]models.RenterRecord, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT u.username, r.from_date, r.to_date
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		WHERE r.bike_id=?
		ORDER BY r.from_date, r.id`, bikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RenterRecord{}
	for rows.Next() {
		var rec models.RenterRecord
		if err := rows.Scan(&rec.Username, &rec.FromDate, &rec.ToDate); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
