package repositories

import (
	"context"
	"strings"

	intdb "bikerental/internal/db"
	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
)

const bikeColumns = `id, model, color, location, rating, available`

// BikeRepository wraps DB access for the bikes table.
type BikeRepository struct {
	DB intdb.Querier
}

func scanBike(row interface{ Scan(...any) error }) (models.Bike, error) {
	var b models.Bike
	err := row.Scan(&b.ID, &b.Model, &b.Color, &b.Location, &b.Rating, &b.Available)
	return b, err
}

func (r BikeRepository) list(ctx context.Context, query string, args ...any) ([]models.Bike, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bike{}
	for rows.Next() {
		b, err := scanBike(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BikeRepository) List(ctx context.Context) ([]models.Bike, error) {
	return r.list(ctx, `SELECT `+bikeColumns+` FROM bikes ORDER BY id`)
}

// ListAvailable returns switched-on bikes with no reservation overlapping rng.
// The subquery is the SQL form of domain.Overlaps.
func (r BikeRepository) ListAvailable(ctx context.Context, rng domain.DateRange) ([]models.Bike, error) {
	from, to := rng.From.String(), rng.To.String()
	return r.list(ctx, `
		SELECT `+bikeColumns+`
		FROM bikes
		WHERE available = 1
		  AND id NOT IN (
			SELECT bike_id FROM reservations
			WHERE (from_date BETWEEN ? AND ?)
			   OR (to_date BETWEEN ? AND ?)
			   OR (? >= from_date AND ? <= to_date)
		  )
		ORDER BY id`,
		from, to,
		from, to,
		from, to,
	)
}

func (r BikeRepository) GetByID(ctx context.Context, id domain.ID) (models.Bike, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.Bike{}, err
	}
	b, err := scanBike(db.QueryRowContext(ctx, `SELECT `+bikeColumns+` FROM bikes WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Bike{}, notFound("bike", err)
	}
	return b, nil
}

// LockByID loads the bike and holds its row lock until the surrounding tx ends.
// It only serializes anything when r.DB is a *sql.Tx.
func (r BikeRepository) LockByID(ctx context.Context, id domain.ID) (models.Bike, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.Bike{}, err
	}
	b, err := scanBike(db.QueryRowContext(ctx, `SELECT `+bikeColumns+` FROM bikes WHERE id=? FOR UPDATE`, id))
	if err != nil {
		return models.Bike{}, notFound("bike", err)
	}
	return b, nil
}

func (r BikeRepository) Create(ctx context.Context, b models.Bike) (models.Bike, error) {
	db, err := pick(r.DB)
	if err != nil {
		return b, err
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO bikes (model, color, location, rating, available) VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(b.Model), strings.TrimSpace(b.Color), strings.TrimSpace(b.Location), b.Rating, b.Available)
	if err != nil {
		return b, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return b, err
	}
	b.ID = domain.ID(id)
	return b, nil
}

// Update applies only the fields present in u. The rating column is never touched here.
func (r BikeRepository) Update(ctx context.Context, id domain.ID, u models.BikeUpdate) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	sets := []string{}
	args := []any{}
	add := func(column string, val any) {
		sets = append(sets, column+"=?")
		args = append(args, val)
	}
	if u.Model != nil {
		add("model", strings.TrimSpace(*u.Model))
	}
	if u.Color != nil {
		add("color", strings.TrimSpace(*u.Color))
	}
	if u.Location != nil {
		add("location", strings.TrimSpace(*u.Location))
	}
	if u.Available != nil {
		add("available", *u.Available)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := db.ExecContext(ctx, `UPDATE bikes SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, "bike")
}

func (r BikeRepository) SetRating(ctx context.Context, id domain.ID, rating float64) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `UPDATE bikes SET rating=? WHERE id=?`, rating, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, "bike")
}

// Delete removes the bike; its reservations go with it through the FK cascade.
func (r BikeRepository) Delete(ctx context.Context, id domain.ID) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM bikes WHERE id=?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, "bike")
}
