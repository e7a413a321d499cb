package usecase

import (
	"context"
	"fmt"
	"time"

	"tabreed-backend/internal/collection"
	"tabreed-backend/internal/domain"
	"tabreed-backend/internal/kvstore"
	"tabreed-backend/pkg/cache"
)

// ShopperStores is the cart/wishlist/compare trio owned by one
// anonymous shopper session. The three stores are independent: an item
// in the wishlist has no relationship to the same item in the cart.
type ShopperStores struct {
	Cart     *collection.Store
	Wishlist *collection.Store
	Compare  *collection.Store
}

// ShopperUsecase hands out the collection stores for a session,
// hydrating them from the kvstore on first access and keeping the
// hydrated trio in the memory cache. Cache eviction is harmless:
// every mutation is persisted synchronously, so the next access
// simply rehydrates the same state.
type ShopperUsecase struct {
	productRepo domain.ProductRepository
	slots       kvstore.Store
	sessions    cache.CacheService
	sessionTTL  time.Duration
	compareCap  int
}

func NewShopperUsecase(productRepo domain.ProductRepository, slots kvstore.Store, sessions cache.CacheService, sessionTTL time.Duration, compareCap int) *ShopperUsecase {
	if compareCap <= 0 {
		compareCap = 4
	}
	return &ShopperUsecase{
		productRepo: productRepo,
		slots:       slots,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
		compareCap:  compareCap,
	}
}

// Stores returns the trio for sessionID.
func (u *ShopperUsecase) Stores(sessionID string) *ShopperStores {
	cacheKey := "shopper:" + sessionID
	if cached, ok := u.sessions.Get(cacheKey); ok {
		if stores, ok := cached.(*ShopperStores); ok {
			return stores
		}
	}

	stores := &ShopperStores{
		Cart:     collection.NewStore(collection.Cart, "cart:"+sessionID, u.slots),
		Wishlist: collection.NewStore(collection.Wishlist, "wishlist:"+sessionID, u.slots),
		Compare:  collection.NewStore(collection.Config{Capacity: u.compareCap}, "compare:"+sessionID, u.slots),
	}
	u.sessions.Set(cacheKey, stores, u.sessionTTL)
	return stores
}

// resolveProduct loads the catalog snapshot that gets frozen into the
// collection. Inactive products cannot be added.
func (u *ShopperUsecase) resolveProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := u.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product not found")
	}
	return product, nil
}

// --- Cart ---

func (u *ShopperUsecase) AddToCart(ctx context.Context, sessionID, productID string, qty int) (*collection.Store, error) {
	product, err := u.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock <= 0 {
		return nil, fmt.Errorf("out of stock")
	}

	cart := u.Stores(sessionID).Cart
	if err := cart.Add(*product, qty); err != nil {
		return nil, err
	}
	return cart, nil
}

func (u *ShopperUsecase) UpdateCartQuantity(sessionID, productID string, qty int) *collection.Store {
	cart := u.Stores(sessionID).Cart
	cart.UpdateQuantity(productID, qty)
	return cart
}

func (u *ShopperUsecase) RemoveFromCart(sessionID, productID string) *collection.Store {
	cart := u.Stores(sessionID).Cart
	cart.Remove(productID)
	return cart
}

func (u *ShopperUsecase) ClearCart(sessionID string) {
	u.Stores(sessionID).Cart.Clear()
}

// --- Wishlist ---

func (u *ShopperUsecase) AddToWishlist(ctx context.Context, sessionID, productID string) (*collection.Store, error) {
	product, err := u.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	wishlist := u.Stores(sessionID).Wishlist
	if err := wishlist.Add(*product, 1); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (u *ShopperUsecase) RemoveFromWishlist(sessionID, productID string) *collection.Store {
	wishlist := u.Stores(sessionID).Wishlist
	wishlist.Remove(productID)
	return wishlist
}

// --- Compare ---

// AddToCompare returns collection.ErrCapacityExceeded when the compare
// list already holds its maximum number of units; nothing changes in
// that case and the handler surfaces it as a user notice.
func (u *ShopperUsecase) AddToCompare(ctx context.Context, sessionID, productID string) (*collection.Store, error) {
	product, err := u.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	compare := u.Stores(sessionID).Compare
	if err := compare.Add(*product, 1); err != nil {
		return nil, err
	}
	return compare, nil
}

func (u *ShopperUsecase) RemoveFromCompare(sessionID, productID string) *collection.Store {
	compare := u.Stores(sessionID).Compare
	compare.Remove(productID)
	return compare
}
