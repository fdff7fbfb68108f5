package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
)

const (
	DefaultCartKey           = "cart"
	DefaultEnrichConcurrency = 8
)

type CartStore struct {
	kv       port.KeyValueStore
	catalog  port.CatalogService
	key      string
	currency currency.Unit
	limit    int
	log      logrus.FieldLogger
}

type Option func(*CartStore)

func WithKey(key string) Option {
	return func(s *CartStore) {
		if key != "" {
			s.key = key
		}
	}
}

func WithCurrency(unit currency.Unit) Option {
	return func(s *CartStore) {
		s.currency = unit
	}
}

func WithEnrichConcurrency(n int) Option {
	return func(s *CartStore) {
		if n > 0 {
			s.limit = n
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *CartStore) {
		if log != nil {
			s.log = log
		}
	}
}

func NewCartStore(kv port.KeyValueStore, catalog port.CatalogService, opts ...Option) (*CartStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv is nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}

	s := &CartStore{
		kv:       kv,
		catalog:  catalog,
		key:      DefaultCartKey,
		currency: currency.USD,
		limit:    DefaultEnrichConcurrency,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.WithField("component", "cart_store")

	return s, nil
}

// Load never fails: an absent, unreadable or undecodable document yields an empty cart.
func (s *CartStore) Load(ctx context.Context) domain.Cart {
	cart, err := s.LoadForUpdate(ctx)
	if err != nil {
		s.log.WithError(err).Warn("cart load failed, using empty cart")
		return domain.EmptyCart()
	}

	return cart
}

// LoadForUpdate is Load for callers about to mutate and save: a storage read failure is
// returned instead of masked, so an unread cart is never overwritten. An undecodable
// document still yields an empty cart.
func (s *CartStore) LoadForUpdate(ctx context.Context) (domain.Cart, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
		return domain.Cart{}, fmt.Errorf("kv.Get: %w", err)
	}
	if !found {
		return domain.EmptyCart(), nil
	}

	cart, err := decodeCart(raw)
	if err != nil {
		s.log.WithError(err).Warn("cart document is corrupt, using empty cart")
		return domain.EmptyCart(), nil
	}

	return cart, nil
}

func (s *CartStore) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := encodeCart(cart)
	if err != nil {
		return fmt.Errorf("encodeCart: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("kv.Set: %w", err)
	}

	return nil
}

func (s *CartStore) AddOrIncrement(ctx context.Context, cart domain.Cart, productID int64, delta int, snapshot *domain.LineSnapshot) (domain.Cart, error) {
	if productID <= 0 {
		return cart, &domain.ValidationError{Field: "productId", Reason: "must be positive"}
	}

	return s.apply(ctx, cart, func(c domain.Cart) domain.Cart {
		return c.AddOrIncrement(productID, delta, snapshot)
	})
}

// SetQuantity clamps to [1, maxStock]; maxStock <= 0 means stock is unknown.
func (s *CartStore) SetQuantity(ctx context.Context, cart domain.Cart, productID int64, quantity, maxStock int) (domain.Cart, error) {
	return s.apply(ctx, cart, func(c domain.Cart) domain.Cart {
		return c.SetQuantity(productID, quantity, maxStock)
	})
}

func (s *CartStore) Increase(ctx context.Context, cart domain.Cart, productID int64, maxStock int) (domain.Cart, error) {
	return s.apply(ctx, cart, func(c domain.Cart) domain.Cart {
		return c.Increase(productID, maxStock)
	})
}

func (s *CartStore) Decrease(ctx context.Context, cart domain.Cart, productID int64) (domain.Cart, error) {
	return s.apply(ctx, cart, func(c domain.Cart) domain.Cart {
		return c.Decrease(productID)
	})
}

func (s *CartStore) Remove(ctx context.Context, cart domain.Cart, productID int64) (domain.Cart, error) {
	return s.apply(ctx, cart, func(c domain.Cart) domain.Cart {
		return c.Remove(productID)
	})
}

// Checkout is local only: the persisted cart is deleted and no order is recorded anywhere.
func (s *CartStore) Checkout(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if err := s.kv.Remove(ctx, s.key); err != nil {
		return cart, fmt.Errorf("kv.Remove: %w", err)
	}

	s.log.WithField("lines", cart.Len()).Info("cart checked out")

	return domain.EmptyCart(), nil
}

// apply persists the mutated cart and hands it back only if the write succeeded;
// otherwise the caller keeps the cart it passed in.
func (s *CartStore) apply(ctx context.Context, cart domain.Cart, mutate func(domain.Cart) domain.Cart) (domain.Cart, error) {
	next := mutate(cart)

	if err := s.Save(ctx, next); err != nil {
		s.log.WithError(err).Warn("cart mutation reverted")
		return cart, fmt.Errorf("s.Save: %w", err)
	}

	return next, nil
}

// Enrich fetches live catalog data for every line concurrently. Results keep the cart's line
// order; the first failed fetch cancels the rest and fails the whole call.
func (s *CartStore) Enrich(ctx context.Context, cart domain.Cart) ([]domain.EnrichedLine, error) {
	if cart.IsEmpty() {
		return nil, nil
	}

	lines := make([]domain.EnrichedLine, len(cart.Lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for i, line := range cart.Lines {
		g.Go(func() error {
			product, err := s.catalog.GetProduct(gctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("catalog.GetProduct[%d]: %w", line.ProductID, err)
			}

			lines[i] = domain.NewEnrichedLine(line, product)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lines, nil
}

type CartSummary struct {
	Lines []domain.EnrichedLine
	Total domain.Money
}

func (s *CartStore) Summary(ctx context.Context, cart domain.Cart) (CartSummary, error) {
	lines, err := s.Enrich(ctx, cart)
	if err != nil {
		return CartSummary{}, fmt.Errorf("s.Enrich: %w", err)
	}

	return CartSummary{
		Lines: lines,
		Total: domain.NewMoney(domain.ComputeTotal(lines), s.currency),
	}, nil
}
