package routes

import (
	"github.com/gorilla/mux"

	"devconnector.com/social-network/handlers"
	"devconnector.com/social-network/services"
)

func CreateUserRoutes(auth *services.AuthService, router *mux.Router) *mux.Router {
	requireAuth := handlers.RequireAuth(auth)

	router.HandleFunc("/api/users", handlers.RegisterUser(auth)).Methods("POST")
	router.Handle("/api/users/device-token", requireAuth(handlers.RegisterDeviceToken(auth))).Methods("POST")

	router.HandleFunc("/api/auth", handlers.Login(auth)).Methods("POST")
	router.Handle("/api/auth", requireAuth(handlers.GetAuthUser(auth))).Methods("GET")

	return router
}
