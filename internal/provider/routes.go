// internal/provider/routes.go

package provider

import (
	"github.com/gorilla/mux"

	"github.com/collabhub/collabhub-backend/internal/auth"
)

// RegisterRoutes registers provider routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/providers").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/me", handler.UpsertProfile).Methods("PUT")
	api.HandleFunc("/me", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/pending", handler.ListPendingProfiles).Methods("GET")
	api.HandleFunc("/{userId:[0-9]+}", handler.GetProfile).Methods("GET")
	api.HandleFunc("/{userId:[0-9]+}/review", handler.ReviewProfile).Methods("POST")
}
