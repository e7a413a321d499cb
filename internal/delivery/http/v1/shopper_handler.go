package v1

import (
	"errors"
	"net/http"

	"tabreed-backend/internal/collection"
	"tabreed-backend/internal/delivery/http/middleware"
	"tabreed-backend/internal/usecase"
	"tabreed-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// ShopperHandler serves the session-scoped cart, wishlist and compare
// endpoints. Every response carries the full post-mutation state of
// the touched collection so the storefront can re-render without a
// second request.
type ShopperHandler struct {
	shopperUC   *usecase.ShopperUsecase
	maxQuantity int
}

func NewShopperHandler(uc *usecase.ShopperUsecase, maxQuantity int) *ShopperHandler {
	if maxQuantity <= 0 {
		maxQuantity = 50
	}
	return &ShopperHandler{shopperUC: uc, maxQuantity: maxQuantity}
}

type itemReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func decodeItemReq(r *http.Request) (itemReq, error) {
	var req itemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	if req.ProductID == "" {
		return req, errors.New("productId is required")
	}
	return req, nil
}

// collectionView is the wire shape shared by all three collections.
// Wishlist and compare omit quantity semantics on the client; sending
// the totals anyway is harmless and keeps one shape.
func collectionView(s *collection.Store) map[string]interface{} {
	return map[string]interface{}{
		"items":         s.Snapshot(),
		"count":         s.Count(),
		"totalQuantity": s.TotalQuantity(),
		"totalPrice":    s.TotalPrice(),
	}
}

func (h *ShopperHandler) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid := middleware.SessionID(r)
	if sid == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing shopper session")
		return "", false
	}
	return sid, true
}

// --- Cart ---

func (h *ShopperHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, collectionView(h.shopperUC.Stores(sid).Cart))
}

func (h *ShopperHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	req, err := decodeItemReq(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// The ceiling applies to the merged line, not the request delta:
	// repeated adds must not grow a line past the maximum.
	added := req.Quantity
	if added < 1 {
		added = 1
	}
	if h.shopperUC.Stores(sid).Cart.Quantity(req.ProductID)+added > h.maxQuantity {
		utils.WriteError(w, http.StatusBadRequest, "Quantity exceeds maximum per item")
		return
	}

	cart, err := h.shopperUC.AddToCart(r.Context(), sid, req.ProductID, req.Quantity)
	if err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, collectionView(cart))
}

func (h *ShopperHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity > h.maxQuantity {
		utils.WriteError(w, http.StatusBadRequest, "Quantity exceeds maximum per item")
		return
	}

	cart := h.shopperUC.UpdateCartQuantity(sid, productID, req.Quantity)
	utils.WriteJSON(w, http.StatusOK, collectionView(cart))
}

func (h *ShopperHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}
	cart := h.shopperUC.RemoveFromCart(sid, productID)
	utils.WriteJSON(w, http.StatusOK, collectionView(cart))
}

func (h *ShopperHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	h.shopperUC.ClearCart(sid)
	utils.WriteJSON(w, http.StatusOK, collectionView(h.shopperUC.Stores(sid).Cart))
}

// --- Wishlist ---

func (h *ShopperHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, collectionView(h.shopperUC.Stores(sid).Wishlist))
}

func (h *ShopperHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	req, err := decodeItemReq(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	wishlist, err := h.shopperUC.AddToWishlist(r.Context(), sid, req.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, collectionView(wishlist))
}

func (h *ShopperHandler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}
	wishlist := h.shopperUC.RemoveFromWishlist(sid, productID)
	utils.WriteJSON(w, http.StatusOK, collectionView(wishlist))
}

// --- Compare ---

func (h *ShopperHandler) GetCompare(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, collectionView(h.shopperUC.Stores(sid).Compare))
}

func (h *ShopperHandler) AddToCompare(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	req, err := decodeItemReq(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	compare, err := h.shopperUC.AddToCompare(r.Context(), sid, req.ProductID)
	if err != nil {
		// A full compare list is a user notice, not a server failure;
		// the list itself is unchanged.
		if errors.Is(err, collection.ErrCapacityExceeded) {
			utils.WriteError(w, http.StatusConflict, "Compare list is full")
			return
		}
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, collectionView(compare))
}

func (h *ShopperHandler) RemoveCompareItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.session(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}
	compare := h.shopperUC.RemoveFromCompare(sid, productID)
	utils.WriteJSON(w, http.StatusOK, collectionView(compare))
}
