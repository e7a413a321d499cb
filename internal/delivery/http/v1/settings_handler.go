package v1

import (
	"net/http"

	"tabreed-backend/internal/domain"
	"tabreed-backend/internal/usecase"
	"tabreed-backend/pkg/utils"
)

type SettingsHandler struct {
	settingsUC *usecase.SettingsUsecase
}

func NewSettingsHandler(uc *usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{settingsUC: uc}
}

// GetSettings serves the public storefront configuration. It never
// fails hard: Get already falls back to the compiled-in defaults, so
// the storefront always has something to render.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, _ := h.settingsUC.Get(r.Context())
	utils.WriteJSON(w, http.StatusOK, settings)
}

// GetEnums serves the fixed vocabularies the storefront and admin
// panel render as pick lists.
func (h *SettingsHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"unitTypes":      domain.UnitTypes,
		"orderStatuses":  domain.OrderStatuses,
		"paymentMethods": domain.PaymentMethods,
	})
}
