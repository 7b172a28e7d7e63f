package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-service/internal/domain"
	"pizza-service/internal/repository"
)

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("success mints 20-char token with 1h expiry", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, testPhone)
		s := NewTokenService(store, time.Hour)

		token, err := s.Issue(ctx, testPhone, testPassword)
		require.NoError(t, err)
		assert.Len(t, token.ID, domain.TokenIDLength)
		assert.Equal(t, testPhone, token.OwnerPhone)
		assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 2*time.Second)

		user, tok, ok := s.Verify(ctx, token.ID)
		require.True(t, ok)
		assert.Equal(t, testPhone, user.Phone)
		assert.Equal(t, token.ID, tok.ID)
	})

	t.Run("second issue while a token is live conflicts", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, testPhone)
		s := NewTokenService(store, time.Hour)

		_, err := s.Issue(ctx, testPhone, testPassword)
		require.NoError(t, err)

		_, err = s.Issue(ctx, testPhone, testPassword)
		assert.ErrorIs(t, err, domain.ErrAlreadyAuthenticated)
	})

	t.Run("wrong password", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, testPhone)
		s := NewTokenService(store, time.Hour)

		_, err := s.Issue(ctx, testPhone, "not-the-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := newTestStore(t)
		s := NewTokenService(store, time.Hour)

		_, err := s.Issue(ctx, "0000000000", testPassword)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("expired token does not block re-issue and gets deleted", func(t *testing.T) {
		store := newTestStore(t)
		user := seedUser(t, store, testPhone)
		s := NewTokenService(store, time.Hour)

		old := &domain.Token{
			ID:         "aaaaaaaaaaaaaaaaaaaa",
			OwnerPhone: testPhone,
			ExpiresAt:  time.Now().Add(-time.Minute),
		}
		putRecord(t, store, repository.CategoryTokens, old.ID, old)
		user.ActiveToken = old.ID
		overwriteRecord(t, store, repository.CategoryUsers, user.Phone, user)

		fresh, err := s.Issue(ctx, testPhone, testPassword)
		require.NoError(t, err)
		assert.NotEqual(t, old.ID, fresh.ID)

		_, err = store.Read(ctx, repository.CategoryTokens, old.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTokenService_Renew(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		store := newTestStore(t)
		s := NewTokenService(store, time.Hour)
		err := s.Renew(ctx, "bbbbbbbbbbbbbbbbbbbb")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("expired token cannot be renewed", func(t *testing.T) {
		store := newTestStore(t)
		s := NewTokenService(store, time.Hour)
		putRecord(t, store, repository.CategoryTokens, "cccccccccccccccccccc", &domain.Token{
			ID:         "cccccccccccccccccccc",
			OwnerPhone: testPhone,
			ExpiresAt:  time.Now().Add(-time.Second),
		})
		err := s.Renew(ctx, "cccccccccccccccccccc")
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("renew sets expiry to now+1h, never stacking", func(t *testing.T) {
		store := newTestStore(t)
		seedUser(t, store, testPhone)
		s := NewTokenService(store, time.Hour)

		token, err := s.Issue(ctx, testPhone, testPassword)
		require.NoError(t, err)

		// Shrink the remaining lifetime, then renew.
		token.ExpiresAt = time.Now().Add(10 * time.Minute)
		overwriteRecord(t, store, repository.CategoryTokens, token.ID, token)

		require.NoError(t, s.Renew(ctx, token.ID))

		_, renewed, ok := s.Verify(ctx, token.ID)
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Hour), renewed.ExpiresAt, 2*time.Second)
	})
}

func TestTokenService_Revoke(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedUser(t, store, testPhone)
	s := NewTokenService(store, time.Hour)

	token, err := s.Issue(ctx, testPhone, testPassword)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, token.ID))

	_, _, ok := s.Verify(ctx, token.ID)
	assert.False(t, ok)
	assert.Empty(t, getUser(t, store, testPhone).ActiveToken)

	// Revoking a token that never existed (or is gone) reports not found.
	err = s.Revoke(ctx, token.ID)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestTokenService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("expired token fails", func(t *testing.T) {
		store := newTestStore(t)
		user := seedUser(t, store, testPhone)
		s := NewTokenService(store, time.Hour)

		stale := &domain.Token{
			ID:         "dddddddddddddddddddd",
			OwnerPhone: testPhone,
			ExpiresAt:  time.Now().Add(-time.Minute),
		}
		putRecord(t, store, repository.CategoryTokens, stale.ID, stale)
		user.ActiveToken = stale.ID
		overwriteRecord(t, store, repository.CategoryUsers, user.Phone, user)

		_, _, ok := s.Verify(ctx, stale.ID)
		assert.False(t, ok)
	})

	t.Run("token surviving a re-issue no longer authorizes", func(t *testing.T) {
		store := newTestStore(t)
		user := seedUser(t, store, testPhone)
		s := NewTokenService(store, time.Hour)

		// A live token record whose id the user is no longer bound to.
		orphan := &domain.Token{
			ID:         "eeeeeeeeeeeeeeeeeeee",
			OwnerPhone: testPhone,
			ExpiresAt:  time.Now().Add(time.Hour),
		}
		putRecord(t, store, repository.CategoryTokens, orphan.ID, orphan)
		user.ActiveToken = "ffffffffffffffffffff"
		overwriteRecord(t, store, repository.CategoryUsers, user.Phone, user)

		_, _, ok := s.Verify(ctx, orphan.ID)
		assert.False(t, ok)
	})

	t.Run("malformed id fails without a store round trip", func(t *testing.T) {
		s := NewTokenService(newTestStore(t), time.Hour)
		_, _, ok := s.Verify(ctx, "short")
		assert.False(t, ok)
	})
}

func TestRandomTokenID(t *testing.T) {
	a, err := randomTokenID()
	require.NoError(t, err)
	b, err := randomTokenID()
	require.NoError(t, err)
	assert.Len(t, a, domain.TokenIDLength)
	assert.NotEqual(t, a, b)
}
