package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"devconnector.com/social-network/metrics"
)

type contextKey struct{ name string }

var userIDKey = &contextKey{"user_id"}

// UserID returns the authenticated caller stored by RequireAuth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

type TokenParser interface {
	ParseToken(token string) (string, error)
}

// RequireAuth accepts a token in "Authorization: Bearer <jwt>" or in the
// x-auth-token header and rejects the request with 401 otherwise.
func RequireAuth(parser TokenParser) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("x-auth-token")
			if header := r.Header.Get("Authorization"); header != "" {
				var ok bool
				token, ok = strings.CutPrefix(header, "Bearer ")
				if !ok {
					writeMsg(w, http.StatusUnauthorized, "Token is not valid")
					return
				}
			}

			if strings.TrimSpace(token) == "" {
				writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			uid, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				writeMsg(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Observe logs every request and records it in the HTTP metrics, labelled by
// the matched route template.
func Observe(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			duration := time.Since(start)
			metrics.ObserveRequest(route, r.Method, sw.status, duration)
			logger.Info("request", "method", r.Method, "route", route, "status", sw.status, "duration", duration)
		})
	}
}

func Recover(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "error", err, "method", r.Method, "path", r.URL.Path)
					http.Error(w, "Server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
