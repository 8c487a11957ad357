// internal/notification/routes.go

package notifications

import (
	"github.com/gorilla/mux"

	"github.com/collabhub/collabhub-backend/internal/auth"
)

// RegisterRoutes registers notification routes
func RegisterRoutes(router *mux.Router, handler *Handler, hub *Hub, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/notifications").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetNotifications).Methods("GET")
	api.HandleFunc("/read-all", handler.MarkAllAsRead).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}/read", handler.MarkAsRead).Methods("POST")
	api.HandleFunc("/ws", hub.ServeWS).Methods("GET")
}
