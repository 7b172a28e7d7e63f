package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pizza-service/internal/domain"
	"pizza-service/internal/repository"
)

// TokenService issues, renews, revokes, and verifies bearer tokens. It is
// the single authorization gate: every authenticated operation goes through
// Verify first.
type TokenService struct {
	store repository.Store
	ttl   time.Duration
}

func NewTokenService(store repository.Store, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{store: store, ttl: ttl}
}

// Issue authenticates phone+password and mints a fresh token. A user with a
// live token must revoke it first: one concurrent session per user.
func (s *TokenService) Issue(ctx context.Context, phone, password string) (*domain.Token, error) {
	user, err := readUser(ctx, s.store, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// A previous token may still be bound; only a live one blocks re-issue.
	prev := user.ActiveToken
	if prev != "" {
		if old, err := s.readToken(ctx, prev); err == nil && !old.Expired(time.Now()) {
			return nil, domain.ErrAlreadyAuthenticated
		}
	}

	id, err := randomTokenID()
	if err != nil {
		return nil, fmt.Errorf("generate token id: %w", err)
	}
	token := &domain.Token{
		ID:         id,
		OwnerPhone: user.Phone,
		ExpiresAt:  time.Now().Add(s.ttl),
	}
	if err := createJSON(ctx, s.store, repository.CategoryTokens, id, token); err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	user.ActiveToken = id
	if err := updateJSON(ctx, s.store, repository.CategoryUsers, user.Phone, user); err != nil {
		return nil, fmt.Errorf("bind token to user: %w", err)
	}

	// The superseded token record is garbage now; losing the delete only
	// leaves a dead file behind.
	if prev != "" && prev != id {
		if err := s.store.Delete(ctx, repository.CategoryTokens, prev); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.Printf("token issue: failed to delete superseded token %s: %v", prev, err)
		}
	}
	return token, nil
}

// Renew extends a live token to now+TTL. Expired tokens cannot be renewed.
func (s *TokenService) Renew(ctx context.Context, tokenID string) error {
	token, err := s.readToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrTokenNotFound
		}
		return err
	}
	if token.Expired(time.Now()) {
		return domain.ErrTokenExpired
	}
	token.ExpiresAt = time.Now().Add(s.ttl)
	if err := updateJSON(ctx, s.store, repository.CategoryTokens, tokenID, token); err != nil {
		return fmt.Errorf("renew token: %w", err)
	}
	return nil
}

// Revoke unbinds the token from its user and removes the record. Deleting
// the record itself is best-effort once the binding is gone.
func (s *TokenService) Revoke(ctx context.Context, tokenID string) error {
	token, err := s.readToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrTokenNotFound
		}
		return err
	}

	user, err := readUser(ctx, s.store, token.OwnerPhone)
	if err == nil && user.ActiveToken == tokenID {
		user.ActiveToken = ""
		if err := updateJSON(ctx, s.store, repository.CategoryUsers, user.Phone, user); err != nil {
			return fmt.Errorf("unbind token from user: %w", err)
		}
	}

	if err := s.store.Delete(ctx, repository.CategoryTokens, tokenID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("token revoke: failed to delete token %s: %v", tokenID, err)
	}
	return nil
}

// Verify resolves a token id to its owner. It returns false for a missing
// or expired token, and for a token the user is no longer bound to (a stale
// token surviving a re-issue must not authorize).
func (s *TokenService) Verify(ctx context.Context, tokenID string) (*domain.User, *domain.Token, bool) {
	if len(tokenID) != domain.TokenIDLength {
		return nil, nil, false
	}
	token, err := s.readToken(ctx, tokenID)
	if err != nil {
		return nil, nil, false
	}
	if token.Expired(time.Now()) {
		return nil, nil, false
	}
	user, err := readUser(ctx, s.store, token.OwnerPhone)
	if err != nil {
		return nil, nil, false
	}
	if user.ActiveToken != token.ID {
		return nil, nil, false
	}
	return user, token, true
}

func (s *TokenService) readToken(ctx context.Context, id string) (*domain.Token, error) {
	b, err := s.store.Read(ctx, repository.CategoryTokens, id)
	if err != nil {
		return nil, err
	}
	var t domain.Token
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", id, err)
	}
	return &t, nil
}

// randomTokenID returns a cryptographically random 20-character id.
func randomTokenID() (string, error) {
	b := make([]byte, domain.TokenIDLength/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
