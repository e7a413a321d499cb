package v1

import (
	"net/http"
	"strconv"

	"tabreed-backend/internal/domain"
	"tabreed-backend/internal/usecase"
	"tabreed-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type AdminCatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewAdminCatalogHandler(uc *usecase.CatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalogUC: uc}
}

// --- Products ---

// ListProducts is the admin listing: inactive products included,
// filterable by active state.
func (h *AdminCatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit == 0 {
		limit = 24
	}
	page, _ := strconv.Atoi(query.Get("page"))
	if page == 0 {
		page = 1
	}

	var isActive *bool
	if val := query.Get("is_active"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			isActive = &b
		}
	}

	filter := domain.ProductFilter{
		BrandSlug: query.Get("brand"),
		UnitType:  query.Get("unit_type"),
		Query:     query.Get("q"),
		Sort:      query.Get("sort"),
		Limit:     limit,
		Offset:    (page - 1) * limit,
		IsActive:  isActive,
	}

	products, total, err := h.catalogUC.AdminListProducts(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data": products,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func (h *AdminCatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}
	product, err := h.catalogUC.GetProductByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *AdminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.catalogUC.CreateProduct(r.Context(), &product); err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, product)
}

func (h *AdminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	product.ID = id

	if err := h.catalogUC.UpdateProduct(r.Context(), &product); err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *AdminCatalogHandler) UpdateProductStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.catalogUC.UpdateProductStatus(r.Context(), id, req.IsActive); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteMessage(w, http.StatusOK, "status updated")
}

func (h *AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustStock applies a signed delta to a product's stock, e.g. after
// a delivery or a manual correction.
func (h *AdminCatalogHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Delta == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Delta must be non-zero")
		return
	}

	if err := h.catalogUC.AdjustStock(r.Context(), id, req.Delta); err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.WriteMessage(w, http.StatusOK, "stock adjusted")
}

func (h *AdminCatalogHandler) GetProductStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalogUC.GetProductStats(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}

// --- Brands ---

func (h *AdminCatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalogUC.AdminListBrands(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch brands")
		return
	}
	utils.WriteJSON(w, http.StatusOK, brands)
}

func (h *AdminCatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var brand domain.Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.catalogUC.CreateBrand(r.Context(), &brand); err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, brand)
}

func (h *AdminCatalogHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Brand ID required")
		return
	}

	var brand domain.Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	brand.ID = id

	if err := h.catalogUC.UpdateBrand(r.Context(), &brand); err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, brand)
}

func (h *AdminCatalogHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Brand ID required")
		return
	}

	if err := h.catalogUC.DeleteBrand(r.Context(), id); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminCatalogHandler) ReorderBrands(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderedIDs []string `json:"orderedIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.OrderedIDs) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "orderedIds is required")
		return
	}

	if err := h.catalogUC.ReorderBrands(r.Context(), req.OrderedIDs); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteMessage(w, http.StatusOK, "brands reordered")
}
