package rediskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"pizza-service/internal/repository"
)

// Store implements the persistence contract on redis. Records live under
// "<category>:<id>" and SETNX provides the atomic create.
type Store struct {
	rdb *redis.Client
}

var _ repository.Store = (*Store)(nil)

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(category, id string) string {
	return category + ":" + id
}

func (s *Store) Exists(ctx context.Context, category, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(category, id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis store: exists %s/%s: %w", category, id, err)
	}
	return n > 0, nil
}

func (s *Store) Create(ctx context.Context, category, id string, value []byte) error {
	ok, err := s.rdb.SetNX(ctx, key(category, id), value, 0).Result()
	if err != nil {
		return fmt.Errorf("redis store: create %s/%s: %w", category, id, err)
	}
	if !ok {
		return repository.ErrAlreadyExists
	}
	return nil
}

func (s *Store) Read(ctx context.Context, category, id string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key(category, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis store: read %s/%s: %w", category, id, err)
	}
	return b, nil
}

func (s *Store) Update(ctx context.Context, category, id string, value []byte) error {
	// SET XX only touches keys that already exist.
	ok, err := s.rdb.SetXX(ctx, key(category, id), value, 0).Result()
	if err != nil {
		return fmt.Errorf("redis store: update %s/%s: %w", category, id, err)
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, category, id string) error {
	n, err := s.rdb.Del(ctx, key(category, id)).Result()
	if err != nil {
		return fmt.Errorf("redis store: delete %s/%s: %w", category, id, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
