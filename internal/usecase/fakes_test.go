package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tabreed-backend/internal/domain"
)

// mapCache is a TTL-less CacheService for tests.
type mapCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]interface{})}
}

func (c *mapCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *mapCache) Set(key string, value interface{}, _ time.Duration) {
	c.mu.Lock()
	c.items[key] = value
	c.mu.Unlock()
}

func (c *mapCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *mapCache) Flush() {
	c.mu.Lock()
	c.items = make(map[string]interface{})
	c.mu.Unlock()
}

// fakeProductRepo serves products from a map and records stock deltas.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product
	adjusted map[string]int
	failID   string // AdjustStock fails for this product id
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products: make(map[string]domain.Product),
		adjusted: make(map[string]int),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product not found")
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) CreateProduct(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	r.products[p.ID] = *p
	r.mu.Unlock()
	return nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, p *domain.Product) error {
	return r.CreateProduct(ctx, p)
}

func (r *fakeProductRepo) UpdateProductStatus(ctx context.Context, id string, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product not found")
	}
	p.IsActive = isActive
	r.products[id] = p
	return nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.products, id)
	r.mu.Unlock()
	return nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, productID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if productID == r.failID {
		return fmt.Errorf("insufficient stock")
	}
	p, ok := r.products[productID]
	if !ok {
		return fmt.Errorf("product not found")
	}
	if p.Stock+delta < 0 {
		return fmt.Errorf("insufficient stock")
	}
	p.Stock += delta
	r.products[productID] = p
	r.adjusted[productID] += delta
	return nil
}

func (r *fakeProductRepo) GetProductStats(ctx context.Context) (*domain.ProductStats, error) {
	return &domain.ProductStats{}, nil
}

func (r *fakeProductRepo) stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

// fakeOrderRepo keeps orders in memory.
type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[string]*domain.Order
	history []domain.OrderHistory
	nextID  int
	failing bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return fmt.Errorf("insert failed")
	}
	r.nextID++
	order.ID = fmt.Sprintf("order-%d", r.nextID)
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order not found")
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order not found")
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) CreateOrderHistory(ctx context.Context, h *domain.OrderHistory) error {
	r.mu.Lock()
	r.history = append(r.history, *h)
	r.mu.Unlock()
	return nil
}

func (r *fakeOrderRepo) GetOrderHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OrderHistory
	for _, h := range r.history {
		if h.OrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

// fakeTxManager just runs the function; the fakes have no real
// transactions to roll back.
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeSettingsRepo stores the raw settings document.
type fakeSettingsRepo struct {
	mu  sync.Mutex
	doc []byte
	err error
}

func (r *fakeSettingsRepo) GetRaw(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.doc, nil
}

func (r *fakeSettingsRepo) Save(ctx context.Context, doc []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.doc = append([]byte(nil), doc...)
	return nil
}
