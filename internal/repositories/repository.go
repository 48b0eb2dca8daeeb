package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "bikerental/internal/config"
	intdb "bikerental/internal/db"
	"bikerental/internal/domain"
)

var errNoDB = domain.InternalError{Msg: "db not available"}

// pick returns q when set, else the shared connection.
func pick(q intdb.Querier) (intdb.Querier, error) {
	if q != nil {
		return q, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, errNoDB
}

func notFound(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

// affectedOrNotFound turns a zero-row write into NotFound.
func affectedOrNotFound(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
