package services

import (
	"context"
	"fmt"
	"strings"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
	"bikerental/internal/repositories"
	"bikerental/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// UserService handles accounts: registration, login and manager CRUD.
type UserService struct {
	Users     UserStore
	Tokens    TokenService
	RequestID string
}

func (s UserService) users() UserStore {
	if s.Users != nil {
		return s.Users
	}
	return repositories.UserRepository{}
}

type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// AuthResult mirrors the login/register response payload.
type AuthResult struct {
	Token string    `json:"token"`
	ID    domain.ID `json:"id"`
	Role  string    `json:"role"`
}

func normalizeRole(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", "user":
		return domain.RoleUser, nil
	case "manager":
		return domain.RoleManager, nil
	default:
		return "", domain.ValidationError{Field: "role", Msg: "role must be User or Manager"}
	}
}

func validateCredentials(c Credentials) error {
	if !utils.ValidateUsername(c.Username) {
		return domain.ValidationError{Field: "username", Msg: "username must be 3-64 characters of letters, digits, . _ - @"}
	}
	if !utils.ValidatePassword(c.Password) {
		return domain.ValidationError{Field: "password", Msg: "password must be 6-72 characters"}
	}
	return nil
}

func (s UserService) create(ctx context.Context, c Credentials, role string) (models.User, error) {
	if err := validateCredentials(c); err != nil {
		return models.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcryptCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	u, err := s.users().Create(ctx, models.User{
		Username:     strings.TrimSpace(c.Username),
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "user", "create_error", err.Error())
		return models.User{}, asDomainErr("failed to save user", err)
	}
	utils.LogEvent(s.RequestID, "user", "create_done", fmt.Sprintf("id=%d role=%s", u.ID, u.Role))
	return u, nil
}

// Register signs up a self-service account with role User and logs it in.
func (s UserService) Register(ctx context.Context, c Credentials) (AuthResult, error) {
	u, err := s.create(ctx, c, domain.RoleUser)
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.Tokens.Issue(u)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, ID: u.ID, Role: u.Role}, nil
}

// Create is the manager path: any role, no token issued.
func (s UserService) Create(ctx context.Context, c Credentials) (models.User, error) {
	role, err := normalizeRole(c.Role)
	if err != nil {
		return models.User{}, err
	}
	return s.create(ctx, c, role)
}

func (s UserService) Login(ctx context.Context, c Credentials) (AuthResult, error) {
	u, err := s.users().GetByUsername(ctx, c.Username)
	if err != nil {
		if domain.IsNotFound(err) {
			return AuthResult{}, domain.UnauthorizedError{Msg: "invalid username or password"}
		}
		return AuthResult{}, asDomainErr("failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(c.Password)); err != nil {
		return AuthResult{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}
	token, err := s.Tokens.Issue(u)
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(s.RequestID, "user", "login", fmt.Sprintf("id=%d", u.ID))
	return AuthResult{Token: token, ID: u.ID, Role: u.Role}, nil
}

// Authenticate verifies a bearer token and that its user still exists. The role
// comes from the stored user, not from the token.
func (s UserService) Authenticate(ctx context.Context, raw string) (domain.RequestContext, error) {
	rc, err := s.Tokens.Parse(raw)
	if err != nil {
		return domain.RequestContext{}, err
	}
	u, err := s.users().GetByID(ctx, rc.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.RequestContext{}, domain.UnauthorizedError{Msg: "user no longer exists"}
		}
		return domain.RequestContext{}, asDomainErr("failed to load user", err)
	}
	return domain.RequestContext{UserID: u.ID, Username: u.Username, Role: u.Role}, nil
}

func (s UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.users().List(ctx)
	return list, asDomainErr("failed to load users", err)
}

// Update edits a user; a present password is re-hashed.
func (s UserService) Update(ctx context.Context, id domain.ID, u models.UserUpdate) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	var username, hash, role string
	if u.Username != nil {
		if !utils.ValidateUsername(*u.Username) {
			return models.User{}, domain.ValidationError{Field: "username", Msg: "invalid username"}
		}
		username = strings.TrimSpace(*u.Username)
	}
	if u.Password != nil && *u.Password != "" {
		if !utils.ValidatePassword(*u.Password) {
			return models.User{}, domain.ValidationError{Field: "password", Msg: "password must be 6-72 characters"}
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*u.Password), bcryptCost)
		if err != nil {
			return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
		}
		hash = string(h)
	}
	if u.Role != nil {
		r, err := normalizeRole(*u.Role)
		if err != nil {
			return models.User{}, err
		}
		role = r
	}
	if username != "" || hash != "" || role != "" {
		if err := s.users().Update(ctx, id, username, hash, role); err != nil {
			utils.LogEvent(s.RequestID, "user", "update_error", err.Error())
			return models.User{}, asDomainErr("failed to update user", err)
		}
		utils.LogEvent(s.RequestID, "user", "update_done", fmt.Sprintf("id=%d", id))
	}
	out, err := s.users().GetByID(ctx, id)
	return out, asDomainErr("failed to load user", err)
}

// Delete removes the user and, by cascade, their reservations.
func (s UserService) Delete(ctx context.Context, id domain.ID) error {
	if id <= 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	if err := s.users().Delete(ctx, id); err != nil {
		utils.LogEvent(s.RequestID, "user", "delete_error", err.Error())
		return asDomainErr("failed to delete user", err)
	}
	utils.LogEvent(s.RequestID, "user", "delete_done", fmt.Sprintf("id=%d", id))
	return nil
}
