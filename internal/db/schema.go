package db

import (
	"context"
	"fmt"
	"log"
)

// Reservations reference bikes and users with ON DELETE CASCADE so deleting either
// removes its reservations.
var schema = []struct {
	table string
	ddl   string
}{
	{"users", `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(191) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(32) NOT NULL DEFAULT 'User',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"bikes", `
CREATE TABLE IF NOT EXISTS bikes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	model VARCHAR(255) NOT NULL,
	color VARCHAR(100) NOT NULL,
	location VARCHAR(255) NOT NULL,
	rating DECIMAL(10,2) NOT NULL DEFAULT 0,
	available TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"reservations", `
CREATE TABLE IF NOT EXISTS reservations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	from_date DATE NOT NULL,
	to_date DATE NOT NULL,
	bike_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,
	rating TINYINT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_bike_dates (bike_id, from_date, to_date),
	KEY idx_user (user_id),
	CONSTRAINT fk_reservation_bike FOREIGN KEY (bike_id) REFERENCES bikes(id) ON DELETE CASCADE,
	CONSTRAINT fk_reservation_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
}

// EnsureSchema creates any missing table, in foreign-key order.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, t := range schema {
		if HasTable(ctx, q, t.table) {
			continue
		}
		if _, err := q.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.table, err)
		}
		log.Printf("[DB] created table %s", t.table)
	}
	return nil
}
