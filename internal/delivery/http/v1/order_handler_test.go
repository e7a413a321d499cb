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
	"tabreed-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderRepo records created orders; only the reads the customer
// order endpoints touch are implemented.
type stubOrderRepo struct {
	orders []*domain.Order
}

func (r *stubOrderRepo) CreateOrder(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = fmt.Sprintf("order-%d", len(r.orders)+1)
	}
	r.orders = append(r.orders, o)
	return nil
}

func (r *stubOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("order not found")
}

func (r *stubOrderRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) GetAll(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	return nil, 0, nil
}
func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (r *stubOrderRepo) CreateOrderHistory(ctx context.Context, h *domain.OrderHistory) error {
	return nil
}
func (r *stubOrderRepo) GetOrderHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	return nil, nil
}

type stubSettingsRepo struct{}

func (r *stubSettingsRepo) GetRaw(ctx context.Context) ([]byte, error) { return nil, nil }
func (r *stubSettingsRepo) Save(ctx context.Context, doc []byte) error { return nil }

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// newCheckoutServer wires cart and checkout the way main does:
// session middleware for everyone, optional auth on checkout, required
// auth on the customer's order list.
func newCheckoutServer(t *testing.T, products ...domain.Product) (http.Handler, *stubOrderRepo) {
	t.Helper()

	repo := &stubProductRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	shopperUC := usecase.NewShopperUsecase(repo, kvstore.NewMemoryStore(), &stubCache{items: map[string]interface{}{}}, time.Minute, 4)
	settingsUC := usecase.NewSettingsUsecase(&stubSettingsRepo{}, &stubCache{items: map[string]interface{}{}}, time.Minute)
	orderRepo := &stubOrderRepo{}
	orderUC := usecase.NewOrderUsecase(orderRepo, repo, shopperUC, settingsUC, stubTxManager{}, nil)

	shopperHandler := NewShopperHandler(shopperUC, 50)
	orderHandler := NewOrderHandler(orderUC)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/cart", shopperHandler.AddToCart)
	mux.Handle("POST /api/v1/checkout", middleware.OptionalAuthMiddleware(http.HandlerFunc(orderHandler.Checkout)))
	mux.Handle("GET /api/v1/orders", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.MyOrders)))

	return middleware.SessionMiddleware(false)(mux), orderRepo
}

const checkoutBody = `{
	"customer": {"name": "Ahmed", "phone": "0501234567", "city": "Riyadh", "address": "King Fahd Rd"},
	"paymentMethod": "cod"
}`

func doAuth(t *testing.T, h http.Handler, method, path, body, token string, cookies []*http.Cookie) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, rec.Result().Cookies()
}

func TestCheckoutAttachesAuthenticatedUser(t *testing.T) {
	utils.SetSecret("test-secret")
	h, orderRepo := newCheckoutServer(t, acUnit("p1", 19999))

	token, err := utils.GenerateJWT("user-1", "ahmed@example.com", "customer", time.Hour)
	require.NoError(t, err)

	rec, cookies := doAuth(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":1}`, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doAuth(t, h, http.MethodPost, "/api/v1/checkout", checkoutBody, token, cookies)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, orderRepo.orders, 1)
	require.NotNil(t, orderRepo.orders[0].UserID, "order placed with a valid token must be attached to the user")
	assert.Equal(t, "user-1", *orderRepo.orders[0].UserID)

	// The customer sees their own order.
	rec, _ = doAuth(t, h, http.MethodGet, "/api/v1/orders", "", token, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), orderRepo.orders[0].ID)
}

func TestCheckoutAllowsGuests(t *testing.T) {
	utils.SetSecret("test-secret")
	h, orderRepo := newCheckoutServer(t, acUnit("p1", 100))

	rec, cookies := doAuth(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":1}`, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doAuth(t, h, http.MethodPost, "/api/v1/checkout", checkoutBody, "", cookies)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, orderRepo.orders, 1)
	assert.Nil(t, orderRepo.orders[0].UserID)
}

func TestCheckoutIgnoresInvalidToken(t *testing.T) {
	utils.SetSecret("test-secret")
	h, orderRepo := newCheckoutServer(t, acUnit("p1", 100))

	rec, cookies := doAuth(t, h, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":1}`, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A stale token downgrades to a guest checkout instead of failing.
	rec, _ = doAuth(t, h, http.MethodPost, "/api/v1/checkout", checkoutBody, "not-a-jwt", cookies)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, orderRepo.orders, 1)
	assert.Nil(t, orderRepo.orders[0].UserID)
}
