package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pizza-service/internal/repository"
)

// Store keeps every record as <base>/<category>/<id>.json. Creates open the
// file with O_EXCL, so a racing create on the same key loses cleanly.
type Store struct {
	base string
}

var _ repository.Store = (*Store)(nil)

// New opens a file store rooted at base, creating the category
// directories if they are missing.
func New(base string) (*Store, error) {
	for _, dir := range []string{
		repository.CategoryUsers,
		repository.CategoryTokens,
		repository.CategoryCarts,
		repository.CategoryOrders,
		repository.CategoryInvoices,
		repository.CategoryItems,
	} {
		if err := os.MkdirAll(filepath.Join(base, dir), 0o755); err != nil {
			return nil, fmt.Errorf("file store: init %s: %w", dir, err)
		}
	}
	return &Store{base: base}, nil
}

func (s *Store) path(category, id string) string {
	return filepath.Join(s.base, category, id+".json")
}

func (s *Store) Exists(ctx context.Context, category, id string) (bool, error) {
	_, err := os.Stat(s.path(category, id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *Store) Create(ctx context.Context, category, id string, value []byte) error {
	f, err := os.OpenFile(s.path(category, id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("file store: create %s/%s: %w", category, id, err)
	}
	if _, err := f.Write(value); err != nil {
		f.Close()
		return fmt.Errorf("file store: write %s/%s: %w", category, id, err)
	}
	return f.Close()
}

func (s *Store) Read(ctx context.Context, category, id string) ([]byte, error) {
	b, err := os.ReadFile(s.path(category, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("file store: read %s/%s: %w", category, id, err)
	}
	return b, nil
}

func (s *Store) Update(ctx context.Context, category, id string, value []byte) error {
	ok, err := s.Exists(ctx, category, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	if err := os.WriteFile(s.path(category, id), value, 0o644); err != nil {
		return fmt.Errorf("file store: update %s/%s: %w", category, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, category, id string) error {
	if err := os.Remove(s.path(category, id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("file store: delete %s/%s: %w", category, id, err)
	}
	return nil
}
