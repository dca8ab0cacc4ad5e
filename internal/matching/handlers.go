// internal/matching/handlers.go

package matching

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

// GetRecommendations handles GET /api/v1/recommendations?cleanOnly=
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	recs, err := h.service.Recommend(r.Context(), userID, utils.QueryBool(r, "cleanOnly"))
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, recs, http.StatusOK)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID, err := utils.PathInt64(r, "id")
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	detail, err := h.service.ProductDetail(r.Context(), userID, productID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, detail, http.StatusOK)
}
