package v1

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tabreed-backend/internal/delivery/http/middleware"
	"tabreed-backend/internal/domain"
	"tabreed-backend/internal/kvstore"
	"tabreed-backend/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProductRepo serves a fixed product list; only the reads the
// shopper endpoints touch are implemented.
type stubProductRepo struct {
	products map[string]domain.Product
}

func (r *stubProductRepo) GetProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	return nil, 0, nil
}

func (r *stubProductRepo) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *stubProductRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	return &p, nil
}

func (r *stubProductRepo) CreateProduct(ctx context.Context, p *domain.Product) error { return nil }
func (r *stubProductRepo) UpdateProduct(ctx context.Context, p *domain.Product) error { return nil }
func (r *stubProductRepo) UpdateProductStatus(ctx context.Context, id string, a bool) error {
	return nil
}
func (r *stubProductRepo) DeleteProduct(ctx context.Context, id string) error { return nil }
func (r *stubProductRepo) AdjustStock(ctx context.Context, id string, d int) error {
	return nil
}
func (r *stubProductRepo) GetProductStats(ctx context.Context) (*domain.ProductStats, error) {
	return nil, nil
}

type stubCache struct{ items map[string]interface{} }

func (c *stubCache) Get(key string) (interface{}, bool)             { v, ok := c.items[key]; return v, ok }
func (c *stubCache) Set(key string, v interface{}, _ time.Duration) { c.items[key] = v }
func (c *stubCache) Delete(key string)                              { delete(c.items, key) }
func (c *stubCache) Flush()                                         { c.items = map[string]interface{}{} }

type collectionResp struct {
	Items []struct {
		Product  domain.Product `json:"product"`
		Quantity int            `json:"quantity"`
	} `json:"items"`
	Count         int     `json:"count"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalPrice    float64 `json:"totalPrice"`
}

func newShopperServer(t *testing.T, products ...domain.Product) http.Handler {
	t.Helper()

	repo := &stubProductRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	uc := usecase.NewShopperUsecase(repo, kvstore.NewMemoryStore(), &stubCache{items: map[string]interface{}{}}, time.Minute, 4)
	handler := NewShopperHandler(uc, 50)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/cart", handler.GetCart)
	mux.HandleFunc("POST /api/v1/cart", handler.AddToCart)
	mux.HandleFunc("PUT /api/v1/cart/{productId}", handler.UpdateCartItem)
	mux.HandleFunc("DELETE /api/v1/cart/{productId}", handler.RemoveCartItem)
	mux.HandleFunc("DELETE /api/v1/cart", handler.ClearCart)
	mux.HandleFunc("POST /api/v1/compare", handler.AddToCompare)
	mux.HandleFunc("GET /api/v1/compare", handler.GetCompare)

	return middleware.SessionMiddleware(false)(mux)
}

func do(t *testing.T, h http.Handler, method, path, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, rec.Result().Cookies()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) collectionResp {
	t.Helper()
	var out collectionResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func acUnit(id string, price float64) domain.Product {
	return domain.Product{ID: id, Name: "Unit " + id, Price: price, Stock: 10, IsActive: true}
}

func TestCartEndpointsFullFlow(t *testing.T) {
	h := newShopperServer(t, acUnit("p1", 19999))

	// First request establishes the session cookie.
	rec, cookies := do(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":1}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, cookies)

	// Same product again merges quantities.
	rec, _ = do(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":2}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 3, resp.TotalQuantity)
	assert.InDelta(t, 59997.0, resp.TotalPrice, 0.001)

	// Update down to one unit.
	rec, _ = do(t, h, http.MethodPut, "/api/v1/cart/p1", `{"quantity":1}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode(t, rec)
	assert.InDelta(t, 19999.0, resp.TotalPrice, 0.001)

	// Clear.
	rec, _ = do(t, h, http.MethodDelete, "/api/v1/cart", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode(t, rec)
	assert.Equal(t, 0, resp.Count)
	assert.InDelta(t, 0.0, resp.TotalPrice, 0.001)
}

func TestCartIsPerSession(t *testing.T) {
	h := newShopperServer(t, acUnit("p1", 100))

	_, cookiesA := do(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":1}`, nil)

	// A different visitor (no cookie) sees an empty cart.
	rec, _ := do(t, h, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, 0, decode(t, rec).Count)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/cart", "", cookiesA)
	assert.Equal(t, 1, decode(t, rec).Count)
}

func TestAddToCartUnknownProductFails(t *testing.T) {
	h := newShopperServer(t)

	rec, _ := do(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"ghost"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddToCartOutOfStockFails(t *testing.T) {
	p := acUnit("p1", 100)
	p.Stock = 0
	h := newShopperServer(t, p)

	rec, _ := do(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddToCartQuantityCapEnforced(t *testing.T) {
	h := newShopperServer(t, acUnit("p1", 100))

	rec, _ := do(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":51}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCartQuantityCapAppliesToMergedLine(t *testing.T) {
	h := newShopperServer(t, acUnit("p1", 100))

	rec, cookies := do(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":50}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A second add within the per-request cap must still be rejected
	// once the merged line would exceed the ceiling.
	rec, _ = do(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":50}`, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/cart", "", cookies)
	assert.Equal(t, 50, decode(t, rec).TotalQuantity)
}

func TestCompareFullReturnsConflict(t *testing.T) {
	products := []domain.Product{
		acUnit("a", 1), acUnit("b", 1), acUnit("c", 1), acUnit("d", 1), acUnit("e", 1),
	}
	h := newShopperServer(t, products...)

	var cookies []*http.Cookie
	for i, id := range []string{"a", "b", "c", "d"} {
		rec, got := do(t, h, http.MethodPost, "/api/v1/compare", `{"productId":"`+id+`"}`, cookies)
		require.Equal(t, http.StatusOK, rec.Code)
		if i == 0 {
			cookies = got
		}
	}

	rec, _ := do(t, h, http.MethodPost, "/api/v1/compare", `{"productId":"e"}`, cookies)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The list is unchanged.
	rec, _ = do(t, h, http.MethodGet, "/api/v1/compare", "", cookies)
	assert.Equal(t, 4, decode(t, rec).Count)
}
