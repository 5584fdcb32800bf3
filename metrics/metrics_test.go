package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("/api/posts/{id}", "GET", "404"))

	ObserveRequest("/api/posts/{id}", "GET", http.StatusNotFound, 5*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("/api/posts/{id}", "GET", "404"))
	assert.Equal(t, before+1, after)
}

func TestPostMutation(t *testing.T) {
	before := testutil.ToFloat64(postMutations.WithLabelValues("like"))
	PostMutation("like")
	assert.Equal(t, before+1, testutil.ToFloat64(postMutations.WithLabelValues("like")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	PostMutation("create")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "devconnector_post_mutations_total")
}
