package service

import (
	"context"
	"errors"
	"github.com/nikolayk812/storefront/internal/domain"
	"sync"
)

var (
	ErrViewClosed   = errors.New("cart view is closed")
	ErrStaleRefresh = errors.New("cart view refresh superseded")
)

// CartView is the per-screen holder of enriched cart data. A refresh result is applied
// only while the view is active and no newer refresh has started.
type CartView struct {
	store *CartStore

	mu         sync.Mutex
	active     bool
	generation uint64
	cancel     context.CancelFunc
	summary    CartSummary
	loaded     bool
}

func (s *CartStore) NewView() *CartView {
	return &CartView{
		store:  s,
		active: true,
	}
}

func (v *CartView) Refresh(ctx context.Context, cart domain.Cart) (CartSummary, error) {
	v.mu.Lock()
	if !v.active {
		v.mu.Unlock()
		return CartSummary{}, ErrViewClosed
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.generation++
	gen := v.generation
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.mu.Unlock()

	defer cancel()

	summary, err := v.store.Summary(ctx, cart)

	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case !v.active:
		return CartSummary{}, ErrViewClosed
	case gen != v.generation:
		return CartSummary{}, ErrStaleRefresh
	case err != nil:
		return CartSummary{}, err
	}

	v.summary = summary
	v.loaded = true
	v.cancel = nil

	return summary, nil
}

// Current returns the last applied summary; ok is false until a refresh has succeeded.
func (v *CartView) Current() (CartSummary, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.summary, v.loaded
}

// Close abandons in-flight refreshes; their results are discarded.
func (v *CartView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.active = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
