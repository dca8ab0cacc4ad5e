// internal/catalog/handlers.go

package catalog

import (
	"net/http"

	"github.com/rikacare/rika-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListProducts handles GET /api/v1/products?limit=
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), utils.QueryInt(r, "limit", defaultListLimit))
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, map[string]interface{}{
		"products": products,
		"count":    len(products),
	}, http.StatusOK)
}
