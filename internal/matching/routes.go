package matching

import (
	"github.com/gorilla/mux"

	"github.com/collabhub/collabhub-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Collaboration model registry
	api.HandleFunc("/models", handler.GetModels).Methods("GET")

	// Per-opportunity matching
	api.HandleFunc("/opportunities/{id}/run", handler.RunMatching).Methods("POST")
	api.HandleFunc("/opportunities/{id}/matches", handler.GetOpportunityMatches).Methods("GET")
	api.HandleFunc("/opportunities/{id}/compatibility/{userId}", handler.GetCompatibility).Methods("GET")
	api.HandleFunc("/opportunities/{id}/match/{userId}", handler.MatchProvider).Methods("POST")

	// Provider-side view
	api.HandleFunc("/me/matches", handler.GetMyMatches).Methods("GET")
}
