package services

import (
	"context"
	"encoding/json"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"pizza-service/internal/domain"
	"pizza-service/internal/repository"
	"pizza-service/internal/repository/memory"
)

const (
	testPhone    = "5551234567"
	testPassword = "hunter2!"
)

func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.New()
}

func seedCatalog(t *testing.T, store repository.Store) {
	t.Helper()
	catalog := domain.Catalog{
		"_pizzas": {
			"p1": {Name: "Margherita", Price: 9.5},
			"p2": {Name: "Quattro Formaggi", Price: 12.25},
		},
		"_sides": {
			"s1": {Name: "Garlic Bread", Price: 4},
		},
	}
	putRecord(t, store, repository.CategoryItems, repository.CatalogKey, catalog)
}

func seedUser(t *testing.T, store repository.Store, phone string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &domain.User{
		Phone:        phone,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Address:      "12 Analytical Engine Way",
		PasswordHash: string(hash),
	}
	putRecord(t, store, repository.CategoryUsers, phone, user)
	return user
}

func putRecord(t *testing.T, store repository.Store, category, id string, v interface{}) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s/%s: %v", category, id, err)
	}
	if err := store.Create(context.Background(), category, id, b); err != nil {
		t.Fatalf("seed %s/%s: %v", category, id, err)
	}
}

func overwriteRecord(t *testing.T, store repository.Store, category, id string, v interface{}) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s/%s: %v", category, id, err)
	}
	if err := store.Update(context.Background(), category, id, b); err != nil {
		t.Fatalf("overwrite %s/%s: %v", category, id, err)
	}
}

func getUser(t *testing.T, store repository.Store, phone string) *domain.User {
	t.Helper()
	b, err := store.Read(context.Background(), repository.CategoryUsers, phone)
	if err != nil {
		t.Fatalf("read user %s: %v", phone, err)
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		t.Fatalf("decode user %s: %v", phone, err)
	}
	return &u
}
