package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tabreed-backend/config"
	"tabreed-backend/internal/delivery/http/middleware"
	v1 "tabreed-backend/internal/delivery/http/v1"
	"tabreed-backend/internal/infrastructure/cache"
	"tabreed-backend/internal/kvstore"
	"tabreed-backend/internal/notification"
	"tabreed-backend/internal/repository/postgres"
	"tabreed-backend/internal/usecase"
	"tabreed-backend/pkg/logger"
	"tabreed-backend/pkg/storage"
	"tabreed-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Connected to PostgreSQL")

	// Repositories
	userRepo := postgres.NewUserRepository(pgxPool)
	productRepo := postgres.NewProductRepository(pgxPool)
	brandRepo := postgres.NewBrandRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	settingsRepo := postgres.NewSettingsRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// In-memory cache: default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Shopper slot storage. A broken data dir falls back to memory so
	// the storefront keeps working; carts just won't survive restarts.
	var slots kvstore.Store
	fileStore, err := kvstore.NewFileStore(cfg.SessionDataDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.SessionDataDir).Msg("Session data dir unavailable, using in-memory slots")
		slots = kvstore.NewMemoryStore()
	} else {
		slots = fileStore
	}

	secureCookies := cfg.Env != "development"

	mux := http.NewServeMux()

	// --- Modules ---

	// Auth Module
	authUC := usecase.NewAuthUsecase(userRepo, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	authHandler := v1.NewAuthHandler(authUC, secureCookies)

	// Storage Module (R2). Optional: without credentials the upload
	// endpoints answer 503 instead of the server refusing to boot.
	var r2Storage *storage.R2Storage
	if cfg.R2AccountID != "" {
		r2Storage, err = storage.NewR2Storage(
			context.Background(),
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 storage")
		}
	} else {
		log.Warn().Msg("R2 storage not configured, uploads disabled")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productRepo, brandRepo, memCache, cfg)
	catalogHandler := v1.NewCatalogHandler(catalogUC)
	adminCatalogHandler := v1.NewAdminCatalogHandler(catalogUC)

	// Settings Module
	settingsUC := usecase.NewSettingsUsecase(settingsRepo, memCache, cfg.CacheSettingsTTL)
	settingsHandler := v1.NewSettingsHandler(settingsUC)
	adminSettingsHandler := v1.NewAdminSettingsHandler(settingsUC)

	// Shopper Module (cart / wishlist / compare)
	shopperUC := usecase.NewShopperUsecase(productRepo, slots, memCache, cfg.SessionCacheTTL, cfg.CompareLimit)
	shopperHandler := v1.NewShopperHandler(shopperUC, cfg.MaxCartQuantity)

	// Order Module
	mailer := notification.NewMailer(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom, cfg.AdminEmail, "Tabreed", cfg.StoreCurrency)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, shopperUC, settingsUC, txManager, mailer)
	orderHandler := v1.NewOrderHandler(orderUC)
	adminOrderHandler := v1.NewAdminOrderHandler(orderUC)

	// --- Routes ---

	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/v1/auth/me", middleware.AuthMiddleware(http.HandlerFunc(authHandler.Me)))

	// User Profile / Addresses
	mux.Handle("PUT /api/v1/user/profile", middleware.AuthMiddleware(http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("GET /api/v1/user/addresses", middleware.AuthMiddleware(http.HandlerFunc(authHandler.GetAddresses)))
	mux.Handle("POST /api/v1/user/addresses", middleware.AuthMiddleware(http.HandlerFunc(authHandler.AddAddress)))
	mux.Handle("PUT /api/v1/user/addresses/{id}", middleware.AuthMiddleware(http.HandlerFunc(authHandler.UpdateAddress)))
	mux.Handle("DELETE /api/v1/user/addresses/{id}", middleware.AuthMiddleware(http.HandlerFunc(authHandler.DeleteAddress)))

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/featured", catalogHandler.FeaturedProducts)
	mux.HandleFunc("GET /api/v1/products/{slug}", catalogHandler.GetProductBySlug)
	mux.HandleFunc("GET /api/v1/product/{id}", catalogHandler.GetProductByID)
	mux.HandleFunc("GET /api/v1/brands", catalogHandler.ListBrands)

	// Settings (Public)
	mux.HandleFunc("GET /api/v1/settings", settingsHandler.GetSettings)
	mux.HandleFunc("GET /api/v1/settings/enums", settingsHandler.GetEnums)

	// Cart (session-scoped, no login required)
	mux.HandleFunc("GET /api/v1/cart", shopperHandler.GetCart)
	mux.HandleFunc("POST /api/v1/cart", shopperHandler.AddToCart)
	mux.HandleFunc("PUT /api/v1/cart/{productId}", shopperHandler.UpdateCartItem)
	mux.HandleFunc("DELETE /api/v1/cart/{productId}", shopperHandler.RemoveCartItem)
	mux.HandleFunc("DELETE /api/v1/cart", shopperHandler.ClearCart)

	// Wishlist
	mux.HandleFunc("GET /api/v1/wishlist", shopperHandler.GetWishlist)
	mux.HandleFunc("POST /api/v1/wishlist", shopperHandler.AddToWishlist)
	mux.HandleFunc("DELETE /api/v1/wishlist/{productId}", shopperHandler.RemoveWishlistItem)

	// Compare
	mux.HandleFunc("GET /api/v1/compare", shopperHandler.GetCompare)
	mux.HandleFunc("POST /api/v1/compare", shopperHandler.AddToCompare)
	mux.HandleFunc("DELETE /api/v1/compare/{productId}", shopperHandler.RemoveCompareItem)

	// Checkout & Orders
	mux.Handle("POST /api/v1/checkout", middleware.OptionalAuthMiddleware(http.HandlerFunc(orderHandler.Checkout)))
	mux.Handle("GET /api/v1/orders", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.MyOrders)))

	// Uploads (Admin)
	mux.Handle("POST /api/v1/admin/upload", adminMiddleware(uploadHandler.UploadFile))
	mux.Handle("DELETE /api/v1/admin/upload", adminMiddleware(uploadHandler.DeleteFile))

	// Admin Product Management
	mux.Handle("GET /api/v1/admin/products", adminMiddleware(adminCatalogHandler.ListProducts))
	mux.Handle("GET /api/v1/admin/products/stats", adminMiddleware(adminCatalogHandler.GetProductStats))
	mux.Handle("GET /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.GetProduct))
	mux.Handle("POST /api/v1/admin/products", adminMiddleware(adminCatalogHandler.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.UpdateProduct))
	mux.Handle("PATCH /api/v1/admin/products/{id}/status", adminMiddleware(adminCatalogHandler.UpdateProductStatus))
	mux.Handle("PATCH /api/v1/admin/products/{id}/stock", adminMiddleware(adminCatalogHandler.AdjustStock))
	mux.Handle("DELETE /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.DeleteProduct))

	// Admin Brands
	mux.Handle("GET /api/v1/admin/brands", adminMiddleware(adminCatalogHandler.ListBrands))
	mux.Handle("POST /api/v1/admin/brands", adminMiddleware(adminCatalogHandler.CreateBrand))
	mux.Handle("PUT /api/v1/admin/brands/{id}", adminMiddleware(adminCatalogHandler.UpdateBrand))
	mux.Handle("DELETE /api/v1/admin/brands/{id}", adminMiddleware(adminCatalogHandler.DeleteBrand))
	mux.Handle("POST /api/v1/admin/brands/reorder", adminMiddleware(adminCatalogHandler.ReorderBrands))

	// Admin Orders
	mux.Handle("GET /api/v1/admin/orders", adminMiddleware(adminOrderHandler.ListOrders))
	mux.Handle("GET /api/v1/admin/orders/{id}", adminMiddleware(adminOrderHandler.GetOrder))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/status", adminMiddleware(adminOrderHandler.UpdateStatus))
	mux.Handle("GET /api/v1/admin/orders/{id}/history", adminMiddleware(adminOrderHandler.GetOrderHistory))

	// Admin Settings & Users
	mux.Handle("GET /api/v1/admin/settings", adminMiddleware(adminSettingsHandler.GetSettings))
	mux.Handle("PUT /api/v1/admin/settings", adminMiddleware(adminSettingsHandler.UpdateSettings))
	mux.Handle("GET /api/v1/admin/users", adminMiddleware(authHandler.ListUsers))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)

	addr := fmt.Sprintf(":%s", cfg.Port)

	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		cfg.RateLimitCleanup,
		cfg.RateLimitClientTTL,
	)

	handler := middleware.SessionMiddleware(secureCookies)(mux)
	handler = middleware.NewCORSMiddleware(cfg)(handler)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	log.Info().Msg("Server exited properly")
}
