package usecase

import (
	"context"
	"fmt"

	"tabreed-backend/config"
	"tabreed-backend/internal/domain"
	"tabreed-backend/pkg/cache"
	"tabreed-backend/pkg/utils"
)

type CatalogUsecase struct {
	productRepo domain.ProductRepository
	brandRepo   domain.BrandRepository
	cache       cache.CacheService
	cfg         *config.Config
}

func NewCatalogUsecase(pRepo domain.ProductRepository, bRepo domain.BrandRepository, memCache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo: pRepo,
		brandRepo:   bRepo,
		cache:       memCache,
		cfg:         cfg,
	}
}

const (
	cacheKeyBrands   = "brands:active"
	cacheKeyFeatured = "products:featured"
)

func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 24
	}
	return u.productRepo.GetProducts(ctx, filter)
}

// FeaturedProducts serves the storefront home page and is cached.
func (u *CatalogUsecase) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := u.cache.Get(cacheKeyFeatured); ok {
		if products, ok := cached.([]domain.Product); ok {
			return products, nil
		}
	}

	active, featured := true, true
	products, _, err := u.productRepo.GetProducts(ctx, domain.ProductFilter{
		IsActive:   &active,
		IsFeatured: &featured,
		Limit:      12,
	})
	if err != nil {
		return nil, err
	}
	u.cache.Set(cacheKeyFeatured, products, u.cfg.CacheProductTTL)
	return products, nil
}

func (u *CatalogUsecase) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return u.productRepo.GetProductBySlug(ctx, slug)
}

func (u *CatalogUsecase) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return u.productRepo.GetProductByID(ctx, id)
}

func (u *CatalogUsecase) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	if cached, ok := u.cache.Get(cacheKeyBrands); ok {
		if brands, ok := cached.([]domain.Brand); ok {
			return brands, nil
		}
	}
	brands, err := u.brandRepo.GetBrands(ctx, true)
	if err != nil {
		return nil, err
	}
	u.cache.Set(cacheKeyBrands, brands, u.cfg.CacheBrandTTL)
	return brands, nil
}

// --- Admin ---

func (u *CatalogUsecase) AdminListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 24
	}
	return u.productRepo.GetProducts(ctx, filter)
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if p.Slug == "" {
		p.Slug = utils.GenerateSlug(p.Name)
	}
	if err := u.productRepo.CreateProduct(ctx, p); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if p.Slug == "" {
		p.Slug = utils.GenerateSlug(p.Name)
	}
	if err := u.productRepo.UpdateProduct(ctx, p); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) UpdateProductStatus(ctx context.Context, id string, isActive bool) error {
	if err := u.productRepo.UpdateProductStatus(ctx, id, isActive); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.productRepo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) AdjustStock(ctx context.Context, productID string, delta int) error {
	return u.productRepo.AdjustStock(ctx, productID, delta)
}

func (u *CatalogUsecase) GetProductStats(ctx context.Context) (*domain.ProductStats, error) {
	return u.productRepo.GetProductStats(ctx)
}

func (u *CatalogUsecase) AdminListBrands(ctx context.Context) ([]domain.Brand, error) {
	return u.brandRepo.GetBrands(ctx, false)
}

func (u *CatalogUsecase) CreateBrand(ctx context.Context, b *domain.Brand) error {
	if b.Name == "" {
		return fmt.Errorf("brand name is required")
	}
	if b.Slug == "" {
		b.Slug = utils.GenerateSlug(b.Name)
	}
	if err := u.brandRepo.CreateBrand(ctx, b); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) UpdateBrand(ctx context.Context, b *domain.Brand) error {
	if b.Slug == "" {
		b.Slug = utils.GenerateSlug(b.Name)
	}
	if err := u.brandRepo.UpdateBrand(ctx, b); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) DeleteBrand(ctx context.Context, id string) error {
	if err := u.brandRepo.DeleteBrand(ctx, id); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

func (u *CatalogUsecase) ReorderBrands(ctx context.Context, orderedIDs []string) error {
	if err := u.brandRepo.ReorderBrands(ctx, orderedIDs); err != nil {
		return err
	}
	u.invalidate()
	return nil
}

// invalidate drops the public caches after any admin write. Dropping
// both keys is cheaper than tracking which one a change affects.
func (u *CatalogUsecase) invalidate() {
	u.cache.Delete(cacheKeyBrands)
	u.cache.Delete(cacheKeyFeatured)
}
