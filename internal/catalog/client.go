package catalog

import (
	"context"
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpclient"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sirupsen/logrus"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultPageSize = 10

type client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) port.CatalogService {
	return &client{
		http: httpclient.New(strings.TrimRight(baseURL, "/"), timeout, log.WithField("component", "catalog")),
	}
}

func (c *client) ListProducts(ctx context.Context, limit, skip int) (domain.ProductPage, error) {
	if limit < 0 || skip < 0 {
		return domain.ProductPage{}, &domain.ValidationError{Field: "limit/skip", Reason: "must not be negative"}
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var page domain.ProductPage
	if err := c.http.Do(ctx, http.MethodGet, "/products?"+q.Encode(), nil, &page); err != nil {
		return domain.ProductPage{}, fmt.Errorf("http.Do: %w", err)
	}

	return page, nil
}

func (c *client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, &domain.ValidationError{Field: "productId", Reason: "must be positive"}
	}

	var product domain.Product
	if err := c.http.Do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, &product); err != nil {
		return domain.Product{}, fmt.Errorf("http.Do[%d]: %w", id, err)
	}

	return product, nil
}

// SearchProducts matches the query against title and category, case-insensitively.
// A blank query matches nothing and skips the network call.
func (c *client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	// limit=0 asks the catalog for every product in one page
	page, err := c.ListProducts(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("c.ListProducts: %w", err)
	}

	return filterProducts(page.Products, query), nil
}

// ListPage fetches one page of the catalog; pages are 1-based and page < 1 means the first page.
func ListPage(ctx context.Context, catalog port.CatalogService, page, pageSize int) (domain.ProductPage, error) {
	page = max(page, 1)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	return catalog.ListProducts(ctx, pageSize, (page-1)*pageSize)
}

func filterProducts(products []domain.Product, query string) []domain.Product {
	var result []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), query) || strings.Contains(strings.ToLower(p.Category), query) {
			result = append(result, p)
		}
	}
	return result
}
