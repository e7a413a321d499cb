package v1

import (
	"net/http"

	"tabreed-backend/internal/domain"
	"tabreed-backend/internal/usecase"
	"tabreed-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type AdminSettingsHandler struct {
	settingsUC *usecase.SettingsUsecase
}

func NewAdminSettingsHandler(uc *usecase.SettingsUsecase) *AdminSettingsHandler {
	return &AdminSettingsHandler{settingsUC: uc}
}

// GetSettings returns the current document the admin panel edits. It
// is the same merged view the storefront sees.
func (h *AdminSettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUC.Get(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

func (h *AdminSettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ShippingFee < 0 || req.FreeShippingMin < 0 {
		utils.WriteError(w, http.StatusBadRequest, "Shipping values cannot be negative")
		return
	}

	saved, err := h.settingsUC.Update(r.Context(), req)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, saved)
}
