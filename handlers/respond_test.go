package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"devconnector.com/social-network/models"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{models.ValidationErrors{{Msg: "Text is required", Param: "text", Location: "body"}}, http.StatusBadRequest,
			`{"errors":[{"msg":"Text is required","param":"text","location":"body"}]}`},
		{fmt.Errorf("load: %w", models.ErrPostNotFound), http.StatusNotFound, `{"msg":"Post not found"}`},
		{models.ErrCommentNotFound, http.StatusNotFound, `{"msg":"Comment not found"}`},
		{models.ErrNotAuthorized, http.StatusUnauthorized, `{"msg":"User not authorized"}`},
		{models.ErrUserExists, http.StatusBadRequest, `{"errors":[{"msg":"User already exists"}]}`},
		{models.ErrInvalidCredentials, http.StatusBadRequest, `{"errors":[{"msg":"Invalid credentials"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "test", tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestWriteErrorHidesUnexpectedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "test", fmt.Errorf("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error\n", rec.Body.String())
}

func TestDecodeBody(t *testing.T) {
	var req models.TextRequest

	rec := httptest.NewRecorder()
	ok := decodeBody(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`)), &req)
	assert.True(t, ok)
	assert.Equal(t, "hi", req.Text)

	req = models.TextRequest{}
	ok = decodeBody(rec, httptest.NewRequest(http.MethodPost, "/", nil), &req)
	assert.True(t, ok, "empty body is accepted")
	assert.Empty(t, req.Text)

	rec = httptest.NewRecorder()
	ok = decodeBody(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":`)), &req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
