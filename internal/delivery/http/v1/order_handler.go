package v1

import (
	"net/http"

	"tabreed-backend/internal/delivery/http/middleware"
	"tabreed-backend/internal/domain"
	"tabreed-backend/internal/usecase"
	"tabreed-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: uc}
}

// Checkout converts the session cart into an order. Guests can check
// out; a logged-in user gets the order attached to their account.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r)
	if sid == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing shopper session")
		return
	}

	var req usecase.CheckoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var userID *string
	if user, ok := r.Context().Value(domain.UserContextKey).(*domain.User); ok {
		userID = &user.ID
	}

	order, err := h.orderUC.Checkout(r.Context(), sid, userID, req)
	if err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := h.orderUC.GetMyOrders(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}
