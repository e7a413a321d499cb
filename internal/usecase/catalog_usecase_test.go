package usecase

import (
	"context"
	"testing"
	"time"

	"tabreed-backend/config"
	"tabreed-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrandRepo is the minimal BrandRepository for catalog tests.
type fakeBrandRepo struct {
	brands []domain.Brand
	calls  int
}

func (r *fakeBrandRepo) GetBrands(ctx context.Context, activeOnly bool) ([]domain.Brand, error) {
	r.calls++
	if !activeOnly {
		return r.brands, nil
	}
	var out []domain.Brand
	for _, b := range r.brands {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBrandRepo) GetBrandByID(ctx context.Context, id string) (*domain.Brand, error) {
	for _, b := range r.brands {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, context.Canceled
}

func (r *fakeBrandRepo) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	r.brands = append(r.brands, *brand)
	return nil
}

func (r *fakeBrandRepo) UpdateBrand(ctx context.Context, brand *domain.Brand) error { return nil }
func (r *fakeBrandRepo) DeleteBrand(ctx context.Context, id string) error           { return nil }
func (r *fakeBrandRepo) ReorderBrands(ctx context.Context, ids []string) error      { return nil }

func catalogTestConfig() *config.Config {
	return &config.Config{
		CacheBrandTTL:   time.Minute,
		CacheProductTTL: time.Minute,
	}
}

func TestListBrandsCachesActiveBrands(t *testing.T) {
	brandRepo := &fakeBrandRepo{brands: []domain.Brand{
		{ID: "b1", Name: "Gree", IsActive: true},
		{ID: "b2", Name: "Old Brand", IsActive: false},
	}}
	uc := NewCatalogUsecase(newFakeProductRepo(), brandRepo, newMapCache(), catalogTestConfig())
	ctx := context.Background()

	brands, err := uc.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Gree", brands[0].Name)

	// Second call is served from cache.
	_, err = uc.ListBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, brandRepo.calls)
}

func TestCreateProductGeneratesSlug(t *testing.T) {
	uc := NewCatalogUsecase(newFakeProductRepo(), &fakeBrandRepo{}, newMapCache(), catalogTestConfig())

	p := domain.Product{ID: "p1", Name: "Samsung WindFree 18000 BTU", Price: 2500}
	require.NoError(t, uc.CreateProduct(context.Background(), &p))
	assert.Equal(t, "samsung-windfree-18000-btu", p.Slug)
}

func TestCreateProductValidation(t *testing.T) {
	uc := NewCatalogUsecase(newFakeProductRepo(), &fakeBrandRepo{}, newMapCache(), catalogTestConfig())
	ctx := context.Background()

	err := uc.CreateProduct(ctx, &domain.Product{ID: "p1", Price: 100})
	assert.Error(t, err, "name required")

	err = uc.CreateProduct(ctx, &domain.Product{ID: "p1", Name: "X", Price: -1})
	assert.Error(t, err, "negative price rejected")

	// Price zero is allowed: it means "price on request".
	err = uc.CreateProduct(ctx, &domain.Product{ID: "p1", Name: "X", Price: 0})
	assert.NoError(t, err)
}

func TestAdminWritesInvalidateBrandCache(t *testing.T) {
	brandRepo := &fakeBrandRepo{brands: []domain.Brand{{ID: "b1", Name: "Gree", IsActive: true}}}
	uc := NewCatalogUsecase(newFakeProductRepo(), brandRepo, newMapCache(), catalogTestConfig())
	ctx := context.Background()

	_, err := uc.ListBrands(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, brandRepo.calls)

	require.NoError(t, uc.CreateBrand(ctx, &domain.Brand{ID: "b2", Name: "Midea", IsActive: true}))

	brands, err := uc.ListBrands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 2)
	assert.Equal(t, 2, brandRepo.calls)
}

func TestAdjustStockGuardsNegative(t *testing.T) {
	productRepo := newFakeProductRepo(testProduct("p1", 100, 2))
	uc := NewCatalogUsecase(productRepo, &fakeBrandRepo{}, newMapCache(), catalogTestConfig())
	ctx := context.Background()

	require.NoError(t, uc.AdjustStock(ctx, "p1", -2))
	assert.Equal(t, 0, productRepo.stock("p1"))

	assert.Error(t, uc.AdjustStock(ctx, "p1", -1))
	assert.Equal(t, 0, productRepo.stock("p1"))

	require.NoError(t, uc.AdjustStock(ctx, "p1", 5))
	assert.Equal(t, 5, productRepo.stock("p1"))
}
