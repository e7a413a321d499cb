package usecase

import (
	"context"
	"time"

	"tabreed-backend/internal/domain"
	"tabreed-backend/pkg/cache"
	"tabreed-backend/pkg/logger"

	"github.com/goccy/go-json"
)

// SettingsUsecase loads and saves the single site-settings document.
//
// Load policy is shallow-merge-with-defaults: the stored JSON is
// unmarshaled into a copy of the compiled-in defaults, so fields the
// stored document does not mention keep their default values. A
// corrupt document falls back to the defaults entirely; the storefront
// must render even when settings are broken.
type SettingsUsecase struct {
	repo     domain.SettingsRepository
	cache    cache.CacheService
	cacheTTL time.Duration
}

func NewSettingsUsecase(repo domain.SettingsRepository, memCache cache.CacheService, cacheTTL time.Duration) *SettingsUsecase {
	return &SettingsUsecase{
		repo:     repo,
		cache:    memCache,
		cacheTTL: cacheTTL,
	}
}

const cacheKeySettings = "settings:site"

func (u *SettingsUsecase) Get(ctx context.Context) (domain.SiteSettings, error) {
	if cached, ok := u.cache.Get(cacheKeySettings); ok {
		if s, ok := cached.(domain.SiteSettings); ok {
			return s, nil
		}
	}

	settings := domain.DefaultSiteSettings()

	doc, err := u.repo.GetRaw(ctx)
	if err != nil {
		return settings, err
	}
	if doc != nil {
		if err := json.Unmarshal(doc, &settings); err != nil {
			logger.Warn().Err(err).Msg("settings: stored document corrupt, serving defaults")
			settings = domain.DefaultSiteSettings()
		}
	}

	u.cache.Set(cacheKeySettings, settings, u.cacheTTL)
	return settings, nil
}

func (u *SettingsUsecase) Update(ctx context.Context, settings domain.SiteSettings) (domain.SiteSettings, error) {
	settings.UpdatedAt = time.Now()
	doc, err := json.Marshal(settings)
	if err != nil {
		return settings, err
	}
	if err := u.repo.Save(ctx, doc); err != nil {
		return settings, err
	}
	u.cache.Delete(cacheKeySettings)
	return settings, nil
}
