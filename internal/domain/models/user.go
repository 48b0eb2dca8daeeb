package models

import "bikerental/internal/domain"

type User struct {
	ID           domain.ID `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
}

// UserUpdate carries an administrative edit; Password is plain text and re-hashed.
type UserUpdate struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}
