package repositories

import (
	"context"
	"errors"
	"strings"

	intdb "bikerental/internal/db"
	"bikerental/internal/domain"
	"bikerental/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

// UserRepository wraps DB access for the users table. Password hashes are only
// read by GetByUsername.
type UserRepository struct {
	DB intdb.Querier
}

func usernameConflict(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return domain.ConflictError{Resource: "user", Msg: "username already in use", Err: err}
	}
	return err
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	db, err := pick(r.DB)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT id, username, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) GetByID(ctx context.Context, id domain.ID) (models.User, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.User{}, err
	}
	var u models.User
	err = db.QueryRowContext(ctx, `SELECT id, username, role FROM users WHERE id=? LIMIT 1`, id).
		Scan(&u.ID, &u.Username, &u.Role)
	if err != nil {
		return models.User{}, notFound("user", err)
	}
	return u, nil
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	db, err := pick(r.DB)
	if err != nil {
		return models.User{}, err
	}
	var u models.User
	err = db.QueryRowContext(ctx,
		`SELECT id, username, role, password_hash FROM users WHERE username=? LIMIT 1`,
		strings.TrimSpace(username)).
		Scan(&u.ID, &u.Username, &u.Role, &u.PasswordHash)
	if err != nil {
		return models.User{}, notFound("user", err)
	}
	return u, nil
}

// Create inserts the user; a taken username surfaces as ConflictError.
func (r UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	db, err := pick(r.DB)
	if err != nil {
		return u, err
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		strings.TrimSpace(u.Username), u.PasswordHash, u.Role)
	if err != nil {
		return u, usernameConflict(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return u, err
	}
	u.ID = domain.ID(id)
	return u, nil
}

// Update writes the non-empty fields. passwordHash is already hashed.
func (r UserRepository) Update(ctx context.Context, id domain.ID, username, passwordHash, role string) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	sets := []string{}
	args := []any{}
	add := func(column, val string) {
		if strings.TrimSpace(val) != "" {
			sets = append(sets, column+"=?")
			args = append(args, strings.TrimSpace(val))
		}
	}
	add("username", username)
	add("password_hash", passwordHash)
	add("role", role)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := db.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return usernameConflict(err)
	}
	return affectedOrNotFound(res, "user")
}

// Delete removes the user; reservations cascade.
func (r UserRepository) Delete(ctx context.Context, id domain.ID) error {
	db, err := pick(r.DB)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, "user")
}
