package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"devconnector.com/social-network/models"
	"devconnector.com/social-network/repository"
	"devconnector.com/social-network/services"
)

type api struct {
	t      *testing.T
	server *httptest.Server
}

func newAPI(t *testing.T) *api {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemory()
	auth := services.NewAuthService(store.Users(), store.DeviceTokens(), services.AuthConfig{
		Secret:     []byte("router-test"),
		TTL:        time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	posts := services.NewPostService(store.Posts(), store.Users(), services.NopNotifier{}, logger)

	server := httptest.NewServer(NewRouter(auth, posts, logger))
	t.Cleanup(server.Close)
	return &api{t: t, server: server}
}

func (a *api) do(method, path, token string, body any, out any) int {
	a.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.server.URL+path, r)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer res.Body.Close()

	if out != nil {
		require.NoError(a.t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func (a *api) register(name, email string) string {
	a.t.Helper()
	var tok models.TokenResponse
	status := a.do("POST", "/api/users", "", models.RegisterRequest{Name: name, Email: email, Password: "secret1"}, &tok)
	require.Equal(a.t, http.StatusOK, status)
	require.NotEmpty(a.t, tok.Token)
	return tok.Token
}

func TestPostLifecycle(t *testing.T) {
	a := newAPI(t)
	ada := a.register("Ada", "ada@example.com")
	bob := a.register("Bob", "bob@example.com")

	var post models.Post
	require.Equal(t, http.StatusOK, a.do("POST", "/api/posts", ada, models.TextRequest{Text: "hello"}, &post))
	assert.Equal(t, "hello", post.Text)
	assert.Equal(t, "Ada", post.Name)
	assert.Empty(t, post.Likes)

	var likes []models.Like
	require.Equal(t, http.StatusOK, a.do("PUT", "/api/posts/like/"+post.ID, bob, nil, &likes))
	require.Len(t, likes, 1)
	require.Equal(t, http.StatusOK, a.do("PUT", "/api/posts/like/"+post.ID, bob, nil, &likes))
	assert.Len(t, likes, 1, "liking twice keeps a single like")

	var comments []models.Comment
	require.Equal(t, http.StatusOK, a.do("POST", "/api/posts/comment/"+post.ID, bob, models.TextRequest{Text: "nice"}, &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "Bob", comments[0].Name)

	var msg models.MessageResponse
	assert.Equal(t, http.StatusUnauthorized, a.do("DELETE", "/api/posts/comment/"+post.ID+"/"+comments[0].ID, ada, nil, &msg))
	assert.Equal(t, "User not authorized", msg.Msg)
	require.Equal(t, http.StatusOK, a.do("DELETE", "/api/posts/comment/"+post.ID+"/"+comments[0].ID, bob, nil, &comments))
	assert.Empty(t, comments)

	require.Equal(t, http.StatusOK, a.do("PUT", "/api/posts/unlike/"+post.ID, bob, nil, &likes))
	assert.Empty(t, likes)

	var updated models.Post
	require.Equal(t, http.StatusOK, a.do("PUT", "/api/posts/"+post.ID, ada, models.TextRequest{Text: "edited"}, &updated))
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, http.StatusUnauthorized, a.do("PUT", "/api/posts/"+post.ID, bob, models.TextRequest{Text: "mine"}, nil))

	var all []models.Post
	require.Equal(t, http.StatusOK, a.do("GET", "/api/posts", bob, nil, &all))
	require.Len(t, all, 1)

	assert.Equal(t, http.StatusUnauthorized, a.do("DELETE", "/api/posts/"+post.ID, bob, nil, nil))
	require.Equal(t, http.StatusOK, a.do("DELETE", "/api/posts/"+post.ID, ada, nil, &msg))
	assert.Equal(t, "Post removed", msg.Msg)
	assert.Equal(t, http.StatusNotFound, a.do("GET", "/api/posts/"+post.ID, ada, nil, &msg))
	assert.Equal(t, "Post not found", msg.Msg)
}

func TestPostsRequireAuth(t *testing.T) {
	a := newAPI(t)

	var msg models.MessageResponse
	assert.Equal(t, http.StatusUnauthorized, a.do("GET", "/api/posts", "", nil, &msg))
	assert.Equal(t, "No token, authorization denied", msg.Msg)

	assert.Equal(t, http.StatusUnauthorized, a.do("GET", "/api/posts", "garbage", nil, &msg))
	assert.Equal(t, "Token is not valid", msg.Msg)
}

func TestCreatePostValidation(t *testing.T) {
	a := newAPI(t)
	ada := a.register("Ada", "ada@example.com")

	var body struct {
		Errors []models.FieldError `json:"errors"`
	}
	require.Equal(t, http.StatusBadRequest, a.do("POST", "/api/posts", ada, models.TextRequest{Text: "  "}, &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "Text is required", body.Errors[0].Msg)
}

func TestAuthEndpoints(t *testing.T) {
	a := newAPI(t)
	a.register("Ada", "ada@example.com")

	var tok models.TokenResponse
	require.Equal(t, http.StatusOK, a.do("POST", "/api/auth", "", models.LoginRequest{Email: "ada@example.com", Password: "secret1"}, &tok))

	var me models.User
	require.Equal(t, http.StatusOK, a.do("GET", "/api/auth", tok.Token, nil, &me))
	assert.Equal(t, "Ada", me.Name)
	assert.Empty(t, me.Password)

	assert.Equal(t, http.StatusBadRequest, a.do("POST", "/api/auth", "", models.LoginRequest{Email: "ada@example.com", Password: "wrong!"}, nil))
	assert.Equal(t, http.StatusBadRequest, a.do("POST", "/api/users", "", models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, nil))

	var msg models.MessageResponse
	require.Equal(t, http.StatusOK, a.do("POST", "/api/users/device-token", tok.Token, map[string]string{"token": "fcm-1"}, &msg))
	assert.Equal(t, http.StatusUnauthorized, a.do("POST", "/api/users/device-token", "", map[string]string{"token": "fcm-1"}, nil))
}

func TestHealthAndMetrics(t *testing.T) {
	a := newAPI(t)

	res, err := http.Get(a.server.URL + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(a.server.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "devconnector_http_requests_total")
}
