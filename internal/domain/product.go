package domain

import (
	"context"
	"time"
)

// Product is a single air-conditioning unit in the catalog.
// Names and descriptions are bilingual; the Arabic fields are the
// primary storefront copy, the English ones the fallback.
//
// Price 0 is a sentinel meaning "price on request": the unit is listed
// without a price and the store follows up with the customer manually.
type Product struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	NameAr        string   `json:"nameAr"`
	Description   string   `json:"description"`
	DescriptionAr string   `json:"descriptionAr"`
	BrandID       string   `json:"brandId"`
	Brand         string   `json:"brand"` // denormalized label for display
	Price         float64  `json:"price"`
	OldPrice      *float64 `json:"oldPrice"` // prior price, for discount display
	CapacityBTU   int      `json:"capacityBtu"`
	UnitType      string   `json:"unitType"`
	Model         string   `json:"model"`
	Features      []string `json:"features"` // ordered feature tags
	Images        []string `json:"images"`
	Stock         int      `json:"stock"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	IsFeatured    bool     `json:"isFeatured"`
	IsActive      bool     `json:"isActive"`

	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Brand struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NameAr     string    `json:"nameAr"`
	Slug       string    `json:"slug"`
	Logo       string    `json:"logo"`
	OrderIndex int       `json:"orderIndex"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ProductFilter struct {
	BrandSlug   string
	UnitType    string
	CapacityBTU int
	Query       string
	MinPrice    float64
	MaxPrice    float64
	Sort        string // newest, price_asc, price_desc
	Limit       int
	Offset      int
	IsActive    *bool // nil = all, true = active, false = inactive
	IsFeatured  *bool
}

type ProductStats struct {
	TotalProducts  int64 `json:"totalProducts"`
	ActiveProducts int64 `json:"activeProducts"`
	OutOfStock     int64 `json:"outOfStock"`
	LowStock       int64 `json:"lowStock"`
}

// --- Interfaces ---

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)

	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error
	UpdateProductStatus(ctx context.Context, id string, isActive bool) error
	DeleteProduct(ctx context.Context, id string) error

	// AdjustStock applies a signed delta; it fails when the result would
	// go negative.
	AdjustStock(ctx context.Context, productID string, delta int) error
	GetProductStats(ctx context.Context) (*ProductStats, error)
}

type BrandRepository interface {
	GetBrands(ctx context.Context, activeOnly bool) ([]Brand, error)
	GetBrandByID(ctx context.Context, id string) (*Brand, error)
	CreateBrand(ctx context.Context, brand *Brand) error
	UpdateBrand(ctx context.Context, brand *Brand) error
	DeleteBrand(ctx context.Context, id string) error
	ReorderBrands(ctx context.Context, orderedIDs []string) error
}
