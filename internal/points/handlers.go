// internal/points/handlers.go

package points

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rikacare/rika-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetPoints handles GET /api/v1/points
func (h *Handler) GetPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	account, err := h.service.GetPoints(r.Context(), userID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, account, http.StatusOK)
}

// AddPoints handles POST /api/v1/points/add
func (h *Handler) AddPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddPointsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	res, err := h.service.AddPoints(r.Context(), userID, req.Action, req.Points)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, res, http.StatusOK)
}

func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/points", handler.GetPoints).Methods(http.MethodGet)
	api.HandleFunc("/points/add", handler.AddPoints).Methods(http.MethodPost)
}
