// internal/assistant/handlers.go

package assistant

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

// Chat handles POST /api/v1/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ChatRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	reply, err := h.service.Chat(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, reply, http.StatusOK)
}

func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/chat", handler.Chat).Methods(http.MethodPost)
}
