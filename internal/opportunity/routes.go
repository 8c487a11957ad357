// internal/opportunity/routes.go

package opportunity

import (
	"github.com/gorilla/mux"

	"github.com/collabhub/collabhub-backend/internal/auth"
)

// RegisterRoutes registers opportunity routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/opportunities").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.CreateOpportunity).Methods("POST")
	api.HandleFunc("", handler.ListActiveOpportunities).Methods("GET")
	api.HandleFunc("/mine", handler.ListMyOpportunities).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", handler.GetOpportunity).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", handler.UpdateOpportunity).Methods("PUT")
	api.HandleFunc("/{id:[0-9]+}/activate", handler.ActivateOpportunity).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}/close", handler.CloseOpportunity).Methods("POST")
}
