// internal/auth/handlers.go

package auth

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

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, resp, http.StatusCreated)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, resp, http.StatusOK)
}

// Me handles GET /api/v1/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, user, http.StatusOK)
}

// UpdateContact handles PUT /api/v1/me/contact
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateContactRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	user, err := h.service.UpdateContact(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessMessageResponse(w, "Contact details updated", user, http.StatusOK)
}

// Verify handles POST /api/v1/me/verification
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req VerifyRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	v, err := h.service.Verify(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessMessageResponse(w, "Verification successful", v, http.StatusOK)
}

func (h *Handler) GetVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	v, err := h.service.GetVerification(r.Context(), userID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, v, http.StatusOK)
}

// RegisterRoutes mounts the public auth endpoints on api and the account
// endpoints on protected.
func RegisterRoutes(api, protected *mux.Router, handler *Handler) {
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)

	protected.HandleFunc("/me", handler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/me/contact", handler.UpdateContact).Methods(http.MethodPut)
	protected.HandleFunc("/me/verification", handler.GetVerification).Methods(http.MethodGet)
	protected.HandleFunc("/me/verification", handler.Verify).Methods(http.MethodPost)
}
