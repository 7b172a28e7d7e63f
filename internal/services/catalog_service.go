package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"

	"pizza-service/internal/domain"
	"pizza-service/internal/repository"
)

// ItemResolver is the read-only catalog lookup the cart and order services
// depend on.
type ItemResolver interface {
	Item(ctx context.Context, category, itemID string) (*domain.Item, error)
}

// CatalogService serves the immutable item catalog, optionally fronted by a
// redis read-through cache.
type CatalogService struct {
	store    repository.Store
	rdb      *redis.Client
	cacheTTL time.Duration
}

var _ ItemResolver = (*CatalogService)(nil)

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store, cacheTTL: time.Minute}
}

// SetRedisClient enables the read-through cache.
func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.rdb = client
}

// Category returns every item of one category, for menu listings.
func (s *CatalogService) Category(ctx context.Context, category string) (map[string]domain.Item, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	items, ok := catalog[category]
	if !ok {
		return nil, domain.ErrUnknownCategory
	}
	return items, nil
}

// Item resolves (category, itemID) to its catalog entry.
func (s *CatalogService) Item(ctx context.Context, category, itemID string) (*domain.Item, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := catalog.Lookup(category, itemID)
	if !ok {
		return nil, domain.ErrUnknownItem
	}
	return &item, nil
}

// Warmup primes the cache for the given categories.
func (s *CatalogService) Warmup(ctx context.Context, categories []string) error {
	if s.rdb == nil {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, category := range categories {
		category := category
		g.Go(func() error {
			if _, err := s.Category(ctx, category); err != nil && !errors.Is(err, domain.ErrUnknownCategory) {
				return fmt.Errorf("warmup %s: %w", category, err)
			}
			return nil
		})
	}
	return g.Wait()
}

const catalogCacheKey = "catalog:" + repository.CatalogKey

func (s *CatalogService) catalog(ctx context.Context) (domain.Catalog, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, catalogCacheKey).Bytes(); err == nil {
			var c domain.Catalog
			if err := json.Unmarshal(cached, &c); err == nil {
				return c, nil
			}
		}
	}

	b, err := s.store.Read(ctx, repository.CategoryItems, repository.CatalogKey)
	if err != nil {
		return nil, fmt.Errorf("read item list: %w", err)
	}
	var c domain.Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode item list: %w", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, catalogCacheKey, b, s.cacheTTL).Err(); err != nil {
			log.Printf("catalog: cache set failed: %v", err)
		}
	}
	return c, nil
}
