package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"pizza-service/internal/domain"
	"pizza-service/internal/repository"
)

// CartService owns the single active cart per user.
type CartService struct {
	store   repository.Store
	catalog ItemResolver
}

func NewCartService(store repository.Store, catalog ItemResolver) *CartService {
	return &CartService{store: store, catalog: catalog}
}

// Open creates an empty cart and binds it to the user.
func (s *CartService) Open(ctx context.Context, user *domain.User) (*domain.Cart, error) {
	if user.ActiveCartID != "" {
		return nil, domain.ErrCartActive
	}
	cart := &domain.Cart{
		ID:    uuid.NewString(),
		Items: []domain.CartLine{},
	}
	if err := createJSON(ctx, s.store, repository.CategoryCarts, cart.ID, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	user.ActiveCartID = cart.ID
	if err := updateJSON(ctx, s.store, repository.CategoryUsers, user.Phone, user); err != nil {
		return nil, fmt.Errorf("attach cart to user: %w", err)
	}
	return cart, nil
}

// View returns the user's active cart.
func (s *CartService) View(ctx context.Context, user *domain.User) (*domain.Cart, error) {
	if user.ActiveCartID == "" {
		return nil, domain.ErrNoCart
	}
	cart, err := readCart(ctx, s.store, user.ActiveCartID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNoCart
		}
		return nil, err
	}
	return cart, nil
}

// Mutate applies an add or remove action to the active cart. Add on an
// existing line increments its quantity; remove decrements and drops the
// line once the quantity reaches zero.
func (s *CartService) Mutate(ctx context.Context, user *domain.User, action domain.CartAction, category, itemID string, quantity int) (*domain.Cart, error) {
	if !action.Valid() || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	cart, err := s.View(ctx, user)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.Item(ctx, category, itemID); err != nil {
		return nil, err
	}

	idx := cart.FindLine(itemID)
	switch {
	case action == domain.CartAdd && idx >= 0:
		cart.Items[idx].Quantity += quantity
	case action == domain.CartAdd:
		cart.Items = append(cart.Items, domain.CartLine{
			Category: category,
			ItemID:   itemID,
			Quantity: quantity,
		})
	case action == domain.CartRemove && idx >= 0:
		cart.Items[idx].Quantity -= quantity
		if cart.Items[idx].Quantity < 1 {
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		}
	default:
		return nil, domain.ErrItemNotInCart
	}

	if err := updateJSON(ctx, s.store, repository.CategoryCarts, cart.ID, cart); err != nil {
		return nil, fmt.Errorf("update cart: %w", err)
	}
	return cart, nil
}

// Close abandons the active cart. The user-cart binding is the
// authoritative state; once it is gone the backing record is garbage, so
// its deletion is best-effort.
func (s *CartService) Close(ctx context.Context, user *domain.User) error {
	if user.ActiveCartID == "" {
		return domain.ErrNoCart
	}
	cartID := user.ActiveCartID
	user.ActiveCartID = ""
	if err := updateJSON(ctx, s.store, repository.CategoryUsers, user.Phone, user); err != nil {
		return fmt.Errorf("detach cart from user: %w", err)
	}
	if err := s.store.Delete(ctx, repository.CategoryCarts, cartID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("cart close: failed to delete cart record %s: %v", cartID, err)
	}
	return nil
}
