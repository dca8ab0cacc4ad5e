// internal/analysis/handlers.go

package analysis

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

// AnalyzeSkin handles POST /api/v1/analysis/skin
func (h *Handler) AnalyzeSkin(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SkinQuizRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	a, err := h.service.AnalyzeSkin(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, a, http.StatusCreated)
}

// AnalyzeHair handles POST /api/v1/analysis/hair
func (h *Handler) AnalyzeHair(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req HairQuizRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	a, err := h.service.AnalyzeHair(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, a, http.StatusCreated)
}

func (h *Handler) CheckIngredients(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req IngredientCheckRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	report, err := h.service.CheckIngredients(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, report, http.StatusOK)
}

// History handles GET /api/v1/analysis?type=&limit=
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.service.History(r.Context(), userID,
		Kind(r.URL.Query().Get("type")), utils.QueryInt(r, "limit", DefaultHistoryLimit))
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, items, http.StatusOK)
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := utils.PathInt64(r, "id")
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	a, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, a, http.StatusOK)
}

func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/analysis", handler.History).Methods(http.MethodGet)
	api.HandleFunc("/analysis/skin", handler.AnalyzeSkin).Methods(http.MethodPost)
	api.HandleFunc("/analysis/hair", handler.AnalyzeHair).Methods(http.MethodPost)
	api.HandleFunc("/analysis/ingredients", handler.CheckIngredients).Methods(http.MethodPost)
	api.HandleFunc("/analysis/{id:[0-9]+}", handler.GetAnalysis).Methods(http.MethodGet)
}
