package matching

import (
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", handler.GetProduct).Methods(http.MethodGet)
}
