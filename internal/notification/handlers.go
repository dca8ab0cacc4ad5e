// internal/notification/handlers.go

package notification

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

// GetNotifications handles GET /api/v1/notifications?limit=&unread=
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	inbox, err := h.service.List(r.Context(), userID,
		utils.QueryInt(r, "limit", DefaultListLimit), utils.QueryBool(r, "unread"))
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, inbox, http.StatusOK)
}

func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.MarkAsRead(r.Context(), userID, id); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.MessageResponse(w, "Notification marked as read", http.StatusOK)
}

func (h *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.MarkAllAsRead(r.Context(), userID); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.MessageResponse(w, "All notifications marked as read", http.StatusOK)
}

func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/notifications", handler.GetNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/read-all", handler.MarkAllAsRead).Methods(http.MethodPut)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", handler.MarkAsRead).Methods(http.MethodPut)
}
