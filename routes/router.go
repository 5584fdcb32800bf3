package routes

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"devconnector.com/social-network/handlers"
	"devconnector.com/social-network/metrics"
	"devconnector.com/social-network/services"
)

func NewRouter(auth *services.AuthService, posts *services.PostService, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(handlers.Recover(logger), handlers.Observe(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	CreateUserRoutes(auth, router)
	CreatePostRoutes(posts, auth, router)

	return router
}
