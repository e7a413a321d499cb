package postgres

import (
	"context"
	"fmt"
	"strings"

	"tabreed-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `
	p.id, p.slug, p.name, p.name_ar, p.description, p.description_ar,
	p.brand_id, COALESCE(b.name, '') AS brand,
	p.price, p.old_price, p.capacity_btu, p.unit_type, p.model,
	p.features, p.images, p.stock, p.rating, p.review_count,
	p.is_featured, p.is_active, p.meta_title, p.meta_description,
	p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.NameAr, &p.Description, &p.DescriptionAr,
		&p.BrandID, &p.Brand,
		&p.Price, &p.OldPrice, &p.CapacityBTU, &p.UnitType, &p.Model,
		&p.Features, &p.Images, &p.Stock, &p.Rating, &p.ReviewCount,
		&p.IsFeatured, &p.IsActive, &p.MetaTitle, &p.MetaDescription,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.IsActive != nil {
		conds = append(conds, "p.is_active = "+arg(*filter.IsActive))
	}
	if filter.IsFeatured != nil {
		conds = append(conds, "p.is_featured = "+arg(*filter.IsFeatured))
	}
	if filter.BrandSlug != "" {
		conds = append(conds, "b.slug = "+arg(filter.BrandSlug))
	}
	if filter.UnitType != "" {
		conds = append(conds, "p.unit_type = "+arg(filter.UnitType))
	}
	if filter.CapacityBTU > 0 {
		conds = append(conds, "p.capacity_btu = "+arg(filter.CapacityBTU))
	}
	if filter.MinPrice > 0 {
		conds = append(conds, "p.price >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		conds = append(conds, "p.price <= "+arg(filter.MaxPrice))
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conds = append(conds, fmt.Sprintf(
			"(p.name ILIKE %s OR p.name_ar ILIKE %s OR p.model ILIKE %s)",
			arg(pattern), arg(pattern), arg(pattern)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	orderBy := "p.created_at DESC"
	switch filter.Sort {
	case "price_asc":
		// Price-on-request units (price 0) sort last, not first
		orderBy = "NULLIF(p.price, 0) ASC NULLS LAST"
	case "price_desc":
		orderBy = "p.price DESC"
	}

	var total int64
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM products p LEFT JOIN brands b ON b.id = p.brand_id %s", where)
	if err := q(ctx, r.db).QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := fmt.Sprintf(
		"SELECT %s FROM products p LEFT JOIN brands b ON b.id = p.brand_id %s ORDER BY %s LIMIT %s OFFSET %s",
		productColumns, where, orderBy, arg(filter.Limit), arg(filter.Offset))

	rows, err := q(ctx, r.db).Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, filter.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	sql := fmt.Sprintf("SELECT %s FROM products p LEFT JOIN brands b ON b.id = p.brand_id WHERE p.slug = $1", productColumns)
	p, err := scanProduct(q(ctx, r.db).QueryRow(ctx, sql, slug))
	if isNoRows(err) {
		return nil, fmt.Errorf("product not found")
	}
	return p, err
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	sql := fmt.Sprintf("SELECT %s FROM products p LEFT JOIN brands b ON b.id = p.brand_id WHERE p.id = $1", productColumns)
	p, err := scanProduct(q(ctx, r.db).QueryRow(ctx, sql, id))
	if isNoRows(err) {
		return nil, fmt.Errorf("product not found")
	}
	return p, err
}

func (r *productRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := q(ctx, r.db).Exec(ctx, `
		INSERT INTO products (
			id, slug, name, name_ar, description, description_ar, brand_id,
			price, old_price, capacity_btu, unit_type, model, features,
			images, stock, is_featured, is_active, meta_title, meta_description,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,NOW(),NOW())`,
		p.ID, p.Slug, p.Name, p.NameAr, p.Description, p.DescriptionAr, p.BrandID,
		p.Price, p.OldPrice, p.CapacityBTU, p.UnitType, p.Model, p.Features,
		p.Images, p.Stock, p.IsFeatured, p.IsActive, p.MetaTitle, p.MetaDescription,
	)
	return err
}

func (r *productRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	tag, err := q(ctx, r.db).Exec(ctx, `
		UPDATE products SET
			slug = $2, name = $3, name_ar = $4, description = $5,
			description_ar = $6, brand_id = $7, price = $8, old_price = $9,
			capacity_btu = $10, unit_type = $11, model = $12, features = $13,
			images = $14, stock = $15, is_featured = $16, is_active = $17,
			meta_title = $18, meta_description = $19, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Slug, p.Name, p.NameAr, p.Description,
		p.DescriptionAr, p.BrandID, p.Price, p.OldPrice,
		p.CapacityBTU, p.UnitType, p.Model, p.Features,
		p.Images, p.Stock, p.IsFeatured, p.IsActive,
		p.MetaTitle, p.MetaDescription,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

func (r *productRepository) UpdateProductStatus(ctx context.Context, id string, isActive bool) error {
	tag, err := q(ctx, r.db).Exec(ctx,
		"UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1", id, isActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := q(ctx, r.db).Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *productRepository) AdjustStock(ctx context.Context, productID string, delta int) error {
	// The WHERE guard makes concurrent checkouts safe: the row only
	// updates when the resulting stock stays non-negative.
	tag, err := q(ctx, r.db).Exec(ctx,
		"UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id = $1 AND stock + $2 >= 0",
		productID, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insufficient stock for product %s", productID)
	}
	return nil
}

func (r *productRepository) GetProductStats(ctx context.Context) (*domain.ProductStats, error) {
	var s domain.ProductStats
	err := q(ctx, r.db).QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE stock = 0),
			COUNT(*) FILTER (WHERE stock > 0 AND stock <= 3)
		FROM products`).
		Scan(&s.TotalProducts, &s.ActiveProducts, &s.OutOfStock, &s.LowStock)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
