package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pizza-service/internal/domain"
	"pizza-service/internal/repository"
)

// Registration is the input for creating a new account.
type Registration struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   string
	Password  string
}

// ProfileUpdate carries the optional profile fields a user may change.
// Empty fields are left untouched.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Address   string
	Password  string
}

// UserService manages account profiles.
type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a new user keyed by phone number.
func (s *UserService) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	if err := validateRegistration(reg); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Phone:        reg.Phone,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Address:      reg.Address,
		PasswordHash: string(hash),
	}
	if err := createJSON(ctx, s.store, repository.CategoryUsers, user.Phone, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Update rewrites the changed profile fields of an already verified user.
func (s *UserService) Update(ctx context.Context, user *domain.User, upd ProfileUpdate) (*domain.User, error) {
	if upd.FirstName == "" && upd.LastName == "" && upd.Address == "" && upd.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if upd.FirstName != "" {
		user.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		user.LastName = upd.LastName
	}
	if upd.Address != "" {
		user.Address = upd.Address
	}
	if upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := updateJSON(ctx, s.store, repository.CategoryUsers, user.Phone, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes the account after re-checking the password. The session
// token is revoked as part of the cascade; losing that delete only leaves a
// dead record behind.
func (s *UserService) Delete(ctx context.Context, user *domain.User, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	if err := s.store.Delete(ctx, repository.CategoryUsers, user.Phone); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if user.ActiveToken != "" {
		if err := s.store.Delete(ctx, repository.CategoryTokens, user.ActiveToken); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.Printf("user delete: failed to delete token %s: %v", user.ActiveToken, err)
		}
	}
	return nil
}

func validateRegistration(reg Registration) error {
	if reg.FirstName == "" || reg.LastName == "" || reg.Address == "" || reg.Password == "" {
		return domain.ErrInvalidInput
	}
	if len(strings.TrimSpace(reg.Phone)) != 10 {
		return domain.ErrInvalidInput
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}
