// internal/profile/routes.go

package profile

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all profile routes on an authenticated subrouter
func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/profile", handler.GetMyProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", handler.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/profile/language", handler.GetLanguage).Methods(http.MethodGet)
	api.HandleFunc("/profile/language", handler.SetLanguage).Methods(http.MethodPut)
}
