// internal/routines/handlers.go

package routines

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

// ListRoutines handles GET /api/v1/routines
func (h *Handler) ListRoutines(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.service.ListRoutines(r.Context(), userID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, list, http.StatusOK)
}

// CreateRoutine handles POST /api/v1/routines
func (h *Handler) CreateRoutine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateRoutineRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	routine, err := h.service.CreateRoutine(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, routine, http.StatusCreated)
}

// CompleteDay handles POST /api/v1/routines/complete-day
func (h *Handler) CompleteDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	completion, err := h.service.CompleteDay(r.Context(), userID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, completion, http.StatusOK)
}

func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/routines", handler.ListRoutines).Methods(http.MethodGet)
	api.HandleFunc("/routines", handler.CreateRoutine).Methods(http.MethodPost)
	api.HandleFunc("/routines/complete-day", handler.CompleteDay).Methods(http.MethodPost)
}
