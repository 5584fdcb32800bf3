package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"devconnector.com/social-network/models"
	"devconnector.com/social-network/services"
)

func CreatePost(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TextRequest
		if !decodeBody(w, r, &req) {
			return
		}

		post, err := svc.Create(r.Context(), UserID(r.Context()), req.Text)
		if err != nil {
			writeError(w, r, "CreatePost", err)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

func GetPosts(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, r, "GetPosts", err)
			return
		}

		writeJSON(w, http.StatusOK, posts)
	}
}

func GetPost(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := svc.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, "GetPost", err)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

func DeletePost(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), UserID(r.Context()), mux.Vars(r)["id"]); err != nil {
			writeError(w, r, "DeletePost", err)
			return
		}

		writeMsg(w, http.StatusOK, "Post removed")
	}
}

func UpdatePost(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TextRequest
		if !decodeBody(w, r, &req) {
			return
		}

		post, err := svc.Update(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], req.Text)
		if err != nil {
			writeError(w, r, "UpdatePost", err)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

func LikePost(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		likes, err := svc.Like(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, "LikePost", err)
			return
		}

		writeJSON(w, http.StatusOK, likes)
	}
}

func UnlikePost(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		likes, err := svc.Unlike(r.Context(), UserID(r.Context()), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, "UnlikePost", err)
			return
		}

		writeJSON(w, http.StatusOK, likes)
	}
}

func CreateComment(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TextRequest
		if !decodeBody(w, r, &req) {
			return
		}

		comments, err := svc.AddComment(r.Context(), UserID(r.Context()), mux.Vars(r)["id"], req.Text)
		if err != nil {
			writeError(w, r, "CreateComment", err)
			return
		}

		writeJSON(w, http.StatusOK, comments)
	}
}

func DeleteComment(svc *services.PostService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		comments, err := svc.DeleteComment(r.Context(), UserID(r.Context()), vars["id"], vars["comment_id"])
		if err != nil {
			writeError(w, r, "DeleteComment", err)
			return
		}

		writeJSON(w, http.StatusOK, comments)
	}
}
