// internal/catalog/routes.go

package catalog

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers catalog routes on an authenticated subrouter.
// Product detail is served by the matching package because it is scored.
func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/products", handler.ListProducts).Methods(http.MethodGet)
}
