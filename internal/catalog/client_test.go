package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpclient"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProducts = []domain.Product{
	{ID: 1, Title: "Essence Mascara Lash Princess", Category: "beauty", Price: decimal.RequireFromString("9.99"), Stock: 99},
	{ID: 2, Title: "Eyeshadow Palette with Mirror", Category: "beauty", Price: decimal.RequireFromString("19.99"), Stock: 34},
	{ID: 3, Title: "Powder Canister", Category: "beauty", Price: decimal.RequireFromString("14.99"), Stock: 89},
	{ID: 4, Title: "Red Lipstick", Category: "beauty", Price: decimal.RequireFromString("12.99"), Stock: 91},
	{ID: 5, Title: "Annibale Colombo Bed", Category: "furniture", Price: decimal.RequireFromString("1899.99"), Stock: 88},
}

type fakeCatalog struct {
	server *httptest.Server
	calls  atomic.Int32
	last   atomic.Value
}

func newFakeCatalog(t *testing.T) *fakeCatalog {
	t.Helper()

	f := &fakeCatalog{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.last.Store(r.Header.Get(httpclient.RequestIDHeader))

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

		products := testProducts[min(skip, len(testProducts)):]
		if limit > 0 && limit < len(products) {
			products = products[:limit]
		}

		writeJSON(w, domain.ProductPage{Products: products, Total: len(testProducts), Skip: skip, Limit: limit})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)

		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		for _, p := range testProducts {
			if p.ID == id {
				writeJSON(w, p)
				return
			}
		}
		http.Error(w, `{"message":"Product not found"}`, http.StatusNotFound)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeCatalog) client() port.CatalogService {
	logger, _ := test.NewNullLogger()
	return catalog.New(f.server.URL+"/", time.Second, logger)
}

func TestGetProduct(t *testing.T) {
	f := newFakeCatalog(t)
	c := f.client()

	tests := []struct {
		name         string
		id           int64
		want         domain.Product
		wantNotFound bool
		wantValidErr bool
	}{
		{name: "existing product: ok", id: 1, want: testProducts[0]},
		{name: "missing product: not found", id: 404, wantNotFound: true},
		{name: "non-positive id: validation", id: 0, wantValidErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.GetProduct(t.Context(), tt.id)

			switch {
			case tt.wantNotFound:
				require.ErrorIs(t, err, domain.ErrNotFound)
				require.ErrorIs(t, err, domain.ErrNetworkFailure)
			case tt.wantValidErr:
				require.True(t, domain.IsValidation(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want.ID, got.ID)
				assert.Equal(t, tt.want.Title, got.Title)
				assert.True(t, tt.want.Price.Equal(got.Price))
				assert.Equal(t, tt.want.Stock, got.Stock)
			}
		})
	}
}

func TestListPage(t *testing.T) {
	f := newFakeCatalog(t)
	c := f.client()

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantIDs  []int64
		wantSkip int
	}{
		{name: "first page", page: 1, pageSize: 2, wantIDs: []int64{1, 2}, wantSkip: 0},
		{name: "second page", page: 2, pageSize: 2, wantIDs: []int64{3, 4}, wantSkip: 2},
		{name: "page below 1 is first page", page: 0, pageSize: 2, wantIDs: []int64{1, 2}, wantSkip: 0},
		{name: "last partial page", page: 3, pageSize: 2, wantIDs: []int64{5}, wantSkip: 4},
		{name: "default page size", page: 1, pageSize: 0, wantIDs: []int64{1, 2, 3, 4, 5}, wantSkip: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := catalog.ListPage(t.Context(), c, tt.page, tt.pageSize)
			require.NoError(t, err)

			assert.Equal(t, tt.wantIDs, productIDs(page.Products))
			assert.Equal(t, tt.wantSkip, page.Skip)
			assert.Equal(t, len(testProducts), page.Total)
		})
	}

	assert.NotEmpty(t, f.last.Load(), "requests carry a request id")
}

func TestSearchProducts(t *testing.T) {
	f := newFakeCatalog(t)
	c := f.client()

	tests := []struct {
		name    string
		query   string
		wantIDs []int64
	}{
		{name: "title match is case-insensitive", query: "LIPSTICK", wantIDs: []int64{4}},
		{name: "category match", query: "furniture", wantIDs: []int64{5}},
		{name: "partial match keeps catalog order", query: "e", wantIDs: []int64{1, 2, 3, 4, 5}},
		{name: "no match", query: "laptop", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.SearchProducts(t.Context(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, productIDs(got))
		})
	}
}

func TestSearchProducts_blankQuerySkipsNetwork(t *testing.T) {
	f := newFakeCatalog(t)
	c := f.client()

	got, err := c.SearchProducts(t.Context(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, f.calls.Load())
}

func TestClient_serverError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	c := catalog.New(server.URL, time.Second, logger)

	_, err := c.GetProduct(t.Context(), 1)
	require.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var statusErr *httpclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestClient_unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	logger, _ := test.NewNullLogger()
	c := catalog.New(url, time.Second, logger)

	_, err := c.ListProducts(t.Context(), 10, 0)
	require.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func productIDs(products []domain.Product) []int64 {
	var ids []int64
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
