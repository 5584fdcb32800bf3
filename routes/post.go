package routes

import (
	"github.com/gorilla/mux"

	"devconnector.com/social-network/handlers"
	"devconnector.com/social-network/services"
)

func CreatePostRoutes(svc *services.PostService, auth handlers.TokenParser, router *mux.Router) *mux.Router {
	posts := router.PathPrefix("/api/posts").Subrouter()
	posts.Use(handlers.RequireAuth(auth))

	posts.HandleFunc("", handlers.CreatePost(svc)).Methods("POST")
	posts.HandleFunc("", handlers.GetPosts(svc)).Methods("GET")
	posts.HandleFunc("/like/{id}", handlers.LikePost(svc)).Methods("PUT")
	posts.HandleFunc("/unlike/{id}", handlers.UnlikePost(svc)).Methods("PUT")
	posts.HandleFunc("/comment/{id}", handlers.CreateComment(svc)).Methods("POST")
	posts.HandleFunc("/comment/{id}/{comment_id}", handlers.DeleteComment(svc)).Methods("DELETE")
	posts.HandleFunc("/{id}", handlers.GetPost(svc)).Methods("GET")
	posts.HandleFunc("/{id}", handlers.UpdatePost(svc)).Methods("PUT")
	posts.HandleFunc("/{id}", handlers.DeletePost(svc)).Methods("DELETE")

	return router
}
