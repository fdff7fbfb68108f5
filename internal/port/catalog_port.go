package port

import (
	"context"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CatalogService interface {
	ListProducts(ctx context.Context, limit, skip int) (domain.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}
