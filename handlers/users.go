package handlers

import (
	"net/http"

	"devconnector.com/social-network/models"
	"devconnector.com/social-network/services"
)

func RegisterUser(auth *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := auth.Register(r.Context(), req)
		if err != nil {
			writeError(w, r, "RegisterUser", err)
			return
		}

		writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
	}
}

func Login(auth *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := auth.Login(r.Context(), req)
		if err != nil {
			writeError(w, r, "Login", err)
			return
		}

		writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
	}
}

func GetAuthUser(auth *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.Me(r.Context(), UserID(r.Context()))
		if err != nil {
			writeError(w, r, "GetAuthUser", err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func RegisterDeviceToken(auth *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		if err := auth.RegisterDeviceToken(r.Context(), UserID(r.Context()), req.Token); err != nil {
			writeError(w, r, "RegisterDeviceToken", err)
			return
		}

		writeMsg(w, http.StatusOK, "Device token registered")
	}
}
