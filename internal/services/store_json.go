package services

import (
	"context"
	"encoding/json"
	"fmt"

	"pizza-service/internal/domain"
	"pizza-service/internal/repository"
)

// JSON codec helpers shared by the services. Store errors pass through
// unwrapped so callers can test them with errors.Is.

func createJSON(ctx context.Context, store repository.Store, category, id string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", category, id, err)
	}
	return store.Create(ctx, category, id, b)
}

func updateJSON(ctx context.Context, store repository.Store, category, id string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", category, id, err)
	}
	return store.Update(ctx, category, id, b)
}

func readUser(ctx context.Context, store repository.Store, phone string) (*domain.User, error) {
	b, err := store.Read(ctx, repository.CategoryUsers, phone)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", phone, err)
	}
	return &u, nil
}

func readCart(ctx context.Context, store repository.Store, cartID string) (*domain.Cart, error) {
	b, err := store.Read(ctx, repository.CategoryCarts, cartID)
	if err != nil {
		return nil, err
	}
	var c domain.Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", cartID, err)
	}
	return &c, nil
}
