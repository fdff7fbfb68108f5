package service_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	products map[int64]domain.Product
	delays   map[int64]time.Duration
	failing  map[int64]error
	blocking map[int64]bool

	calls atomic.Int32
}

func newFakeCatalog(products ...domain.Product) *fakeCatalog {
	f := &fakeCatalog{
		products: make(map[int64]domain.Product),
		delays:   make(map[int64]time.Duration),
		failing:  make(map[int64]error),
		blocking: make(map[int64]bool),
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	f.calls.Add(1)

	if f.blocking[id] {
		<-ctx.Done()
		return domain.Product{}, ctx.Err()
	}

	if d := f.delays[id]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return domain.Product{}, ctx.Err()
		}
	}

	if err := f.failing[id]; err != nil {
		return domain.Product{}, err
	}

	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, domain.ErrNotFound)
	}
	return p, nil
}

func (f *fakeCatalog) ListProducts(context.Context, int, int) (domain.ProductPage, error) {
	return domain.ProductPage{}, fmt.Errorf("not implemented")
}

func (f *fakeCatalog) SearchProducts(context.Context, string) ([]domain.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

// flakyKV wraps a store and fails the selected operations with a storage error.
type flakyKV struct {
	port.KeyValueStore

	mu         sync.Mutex
	failGet    bool
	failSet    bool
	failRemove bool
}

func (f *flakyKV) setFailures(get, set, remove bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet, f.failSet, f.failRemove = get, set, remove
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, fmt.Errorf("get: %w", domain.ErrStorageUnavailable)
	}
	return f.KeyValueStore.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("set: %w", domain.ErrStorageUnavailable)
	}
	return f.KeyValueStore.Set(ctx, key, value)
}

func (f *flakyKV) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failRemove
	f.mu.Unlock()
	if fail {
		return fmt.Errorf("remove: %w", domain.ErrStorageUnavailable)
	}
	return f.KeyValueStore.Remove(ctx, key)
}

func randomProduct(id int64) domain.Product {
	return domain.Product{
		ID:        id,
		Title:     gofakeit.ProductName(),
		Category:  gofakeit.ProductCategory(),
		Price:     decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Stock:     gofakeit.IntRange(1, 100),
		Thumbnail: gofakeit.URL(),
	}
}
