package postgres

import (
	"context"

	"tabreed-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type settingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) domain.SettingsRepository {
	return &settingsRepository{db: db}
}

// The settings document lives in a single fixed row; the usecase
// handles merging it over defaults.
const settingsKey = "site"

func (r *settingsRepository) GetRaw(ctx context.Context) ([]byte, error) {
	var doc []byte
	err := q(ctx, r.db).QueryRow(ctx,
		"SELECT doc FROM site_settings WHERE key = $1", settingsKey).Scan(&doc)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *settingsRepository) Save(ctx context.Context, doc []byte) error {
	_, err := q(ctx, r.db).Exec(ctx, `
		INSERT INTO site_settings (key, doc, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`,
		settingsKey, doc)
	return err
}
