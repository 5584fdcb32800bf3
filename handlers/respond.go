package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"devconnector.com/social-network/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.MessageResponse{Msg: msg})
}

// writeError maps domain errors onto HTTP responses. Anything unexpected is
// logged under op and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr models.ValidationErrors

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]models.ValidationErrors{"errors": verr})
	case errors.Is(err, models.ErrPostNotFound):
		writeMsg(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, models.ErrCommentNotFound):
		writeMsg(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, models.ErrUserNotFound):
		writeMsg(w, http.StatusNotFound, "User not found")
	case errors.Is(err, models.ErrNotAuthorized):
		writeMsg(w, http.StatusUnauthorized, "User not authorized")
	case errors.Is(err, models.ErrUserExists):
		writeJSON(w, http.StatusBadRequest, map[string]models.ValidationErrors{"errors": {{Msg: "User already exists"}}})
	case errors.Is(err, models.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, map[string]models.ValidationErrors{"errors": {{Msg: "Invalid credentials"}}})
	default:
		slog.ErrorContext(r.Context(), op+" failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

// decodeBody reads a JSON request body into v. An empty body leaves v as is.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
