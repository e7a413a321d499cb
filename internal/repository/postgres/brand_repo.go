package postgres

import (
	"context"
	"fmt"

	"tabreed-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type brandRepository struct {
	db *pgxpool.Pool
}

func NewBrandRepository(db *pgxpool.Pool) domain.BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) GetBrands(ctx context.Context, activeOnly bool) ([]domain.Brand, error) {
	sql := "SELECT id, name, name_ar, slug, logo, order_index, is_active, created_at FROM brands"
	if activeOnly {
		sql += " WHERE is_active"
	}
	sql += " ORDER BY order_index, name"

	rows, err := q(ctx, r.db).Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.NameAr, &b.Slug, &b.Logo, &b.OrderIndex, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *brandRepository) GetBrandByID(ctx context.Context, id string) (*domain.Brand, error) {
	var b domain.Brand
	err := q(ctx, r.db).QueryRow(ctx,
		"SELECT id, name, name_ar, slug, logo, order_index, is_active, created_at FROM brands WHERE id = $1", id).
		Scan(&b.ID, &b.Name, &b.NameAr, &b.Slug, &b.Logo, &b.OrderIndex, &b.IsActive, &b.CreatedAt)
	if isNoRows(err) {
		return nil, fmt.Errorf("brand not found")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepository) CreateBrand(ctx context.Context, b *domain.Brand) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	_, err := q(ctx, r.db).Exec(ctx, `
		INSERT INTO brands (id, name, name_ar, slug, logo, order_index, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())`,
		b.ID, b.Name, b.NameAr, b.Slug, b.Logo, b.OrderIndex, b.IsActive)
	return err
}

func (r *brandRepository) UpdateBrand(ctx context.Context, b *domain.Brand) error {
	tag, err := q(ctx, r.db).Exec(ctx, `
		UPDATE brands SET name = $2, name_ar = $3, slug = $4, logo = $5,
			order_index = $6, is_active = $7
		WHERE id = $1`,
		b.ID, b.Name, b.NameAr, b.Slug, b.Logo, b.OrderIndex, b.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("brand not found")
	}
	return nil
}

func (r *brandRepository) DeleteBrand(ctx context.Context, id string) error {
	_, err := q(ctx, r.db).Exec(ctx, "DELETE FROM brands WHERE id = $1", id)
	return err
}

func (r *brandRepository) ReorderBrands(ctx context.Context, orderedIDs []string) error {
	for i, id := range orderedIDs {
		if _, err := q(ctx, r.db).Exec(ctx,
			"UPDATE brands SET order_index = $2 WHERE id = $1", id, i); err != nil {
			return err
		}
	}
	return nil
}
