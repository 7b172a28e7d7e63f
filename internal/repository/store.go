package repository

import (
	"context"
	"errors"
)

// Record categories used by the service.
const (
	CategoryUsers    = "users"
	CategoryTokens   = "tokens"
	CategoryCarts    = "carts"
	CategoryOrders   = "orders"
	CategoryInvoices = "invoice"
	CategoryItems    = "items"
)

// CatalogKey is the id of the master item list within CategoryItems.
const CatalogKey = "_list_items"

var (
	ErrAlreadyExists = errors.New("record already exists")
	ErrNotFound      = errors.New("record not found")
)

// Store is the key-value persistence contract. Records are JSON documents
// keyed by (category, id). Create must be atomic: when two writers race on
// the same key, exactly one succeeds and the other gets ErrAlreadyExists.
// That guarantee is the only concurrency primitive the services rely on.
type Store interface {
	Exists(ctx context.Context, category, id string) (bool, error)
	Create(ctx context.Context, category, id string, value []byte) error
	Read(ctx context.Context, category, id string) ([]byte, error)
	Update(ctx context.Context, category, id string, value []byte) error
	Delete(ctx context.Context, category, id string) error
}
