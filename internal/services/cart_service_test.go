package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-service/internal/domain"
	"pizza-service/internal/repository"
	"pizza-service/internal/repository/memory"
)

func newCartService(t *testing.T) (*CartService, *memory.Store, *domain.User) {
	t.Helper()
	store := newTestStore(t)
	seedCatalog(t, store)
	user := seedUser(t, store, testPhone)
	return NewCartService(store, NewCatalogService(store)), store, user
}

func TestCartService_Open(t *testing.T) {
	ctx := context.Background()
	s, store, user := newCartService(t)

	cart, err := s.Open(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, cart.ID, getUser(t, store, testPhone).ActiveCartID)

	_, err = s.Open(ctx, user)
	assert.ErrorIs(t, err, domain.ErrCartActive)
}

func TestCartService_View(t *testing.T) {
	ctx := context.Background()
	s, _, user := newCartService(t)

	_, err := s.View(ctx, user)
	assert.ErrorIs(t, err, domain.ErrNoCart)

	opened, err := s.Open(ctx, user)
	require.NoError(t, err)

	viewed, err := s.View(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, viewed.ID)
}

func TestCartService_Mutate(t *testing.T) {
	ctx := context.Background()

	t.Run("add merges by incrementing quantity", func(t *testing.T) {
		s, _, user := newCartService(t)
		_, err := s.Open(ctx, user)
		require.NoError(t, err)

		cart, err := s.Mutate(ctx, user, domain.CartAdd, "_pizzas", "p1", 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)

		cart, err = s.Mutate(ctx, user, domain.CartAdd, "_pizzas", "p1", 3)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("add appends a new line per item", func(t *testing.T) {
		s, _, user := newCartService(t)
		_, err := s.Open(ctx, user)
		require.NoError(t, err)

		_, err = s.Mutate(ctx, user, domain.CartAdd, "_pizzas", "p1", 1)
		require.NoError(t, err)
		cart, err := s.Mutate(ctx, user, domain.CartAdd, "_sides", "s1", 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 2)
		assert.Equal(t, "s1", cart.Items[1].ItemID)
	})

	t.Run("remove decrements and drops the line at zero", func(t *testing.T) {
		s, _, user := newCartService(t)
		_, err := s.Open(ctx, user)
		require.NoError(t, err)

		_, err = s.Mutate(ctx, user, domain.CartAdd, "_pizzas", "p1", 5)
		require.NoError(t, err)

		cart, err := s.Mutate(ctx, user, domain.CartRemove, "_pizzas", "p1", 2)
		require.NoError(t, err)
		assert.Equal(t, 3, cart.Items[0].Quantity)

		// Removing at least the remaining quantity deletes the line.
		cart, err = s.Mutate(ctx, user, domain.CartRemove, "_pizzas", "p1", 7)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("remove on an absent line fails", func(t *testing.T) {
		s, _, user := newCartService(t)
		_, err := s.Open(ctx, user)
		require.NoError(t, err)

		_, err = s.Mutate(ctx, user, domain.CartRemove, "_pizzas", "p1", 1)
		assert.ErrorIs(t, err, domain.ErrItemNotInCart)
	})

	t.Run("unknown catalog item fails", func(t *testing.T) {
		s, _, user := newCartService(t)
		_, err := s.Open(ctx, user)
		require.NoError(t, err)

		_, err = s.Mutate(ctx, user, domain.CartAdd, "_pizzas", "nope", 1)
		assert.ErrorIs(t, err, domain.ErrUnknownItem)
	})

	t.Run("invalid action or quantity fails", func(t *testing.T) {
		s, _, user := newCartService(t)
		_, err := s.Open(ctx, user)
		require.NoError(t, err)

		_, err = s.Mutate(ctx, user, domain.CartAction("drop"), "_pizzas", "p1", 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = s.Mutate(ctx, user, domain.CartAdd, "_pizzas", "p1", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCartService_Close(t *testing.T) {
	ctx := context.Background()
	s, store, user := newCartService(t)

	err := s.Close(ctx, user)
	assert.ErrorIs(t, err, domain.ErrNoCart)

	cart, err := s.Open(ctx, user)
	require.NoError(t, err)

	require.NoError(t, s.Close(ctx, user))
	assert.Empty(t, getUser(t, store, testPhone).ActiveCartID)

	_, err = store.Read(ctx, repository.CategoryCarts, cart.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
