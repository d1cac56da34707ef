package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zhouzirui/movies/backend/internal/config"
	model "github.com/zhouzirui/movies/backend/internal/model/movie"
	movieService "github.com/zhouzirui/movies/backend/internal/service/movie"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	seed, err := model.Seed()
	require.NoError(t, err)

	svc := movieService.NewService(model.NewMemoryStore(seed), zaptest.NewLogger(t))
	return NewRouter(svc, Options{
		AllowedOrigins: config.DefaultAllowedOrigins,
		Logger:         zaptest.NewLogger(t),
	})
}

func serve(h http.Handler, method, target, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouterAllowsConfiguredOrigins(t *testing.T) {
	r := newTestRouter(t)

	for _, origin := range config.DefaultAllowedOrigins {
		rr := serve(r, http.MethodGet, "/movies", origin)
		assert.Equal(t, http.StatusOK, rr.Code, origin)
		assert.Equal(t, origin, rr.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouterAllowsRequestsWithoutOrigin(t *testing.T) {
	rr := serve(newTestRouter(t), http.MethodGet, "/movies", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouterRejectsForeignOriginBeforeHandlers(t *testing.T) {
	r := newTestRouter(t)

	rr := serve(r, http.MethodDelete, "/movies/dcdd0fad-a94c-4810-8acc-5f108d3b18c3", "http://evil.example")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// the movie must survive the rejected delete
	rr = serve(r, http.MethodGet, "/movies/dcdd0fad-a94c-4810-8acc-5f108d3b18c3", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouterPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/movies/abc", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rr := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestRouterHeadFollowsGetRoutes(t *testing.T) {
	r := newTestRouter(t)

	rr := serve(r, http.MethodHead, "/movies", "http://movies.com")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(r, http.MethodHead, "/movies/dcdd0fad-a94c-4810-8acc-5f108d3b18c3", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(r, http.MethodHead, "/movies/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouterHealthz(t *testing.T) {
	rr := serve(newTestRouter(t), http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","movies":10}`, rr.Body.String())
}

func TestRouterNotFoundAndMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t)

	rr := serve(r, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rr.Body.String())

	rr = serve(r, http.MethodPut, "/movies/abc", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterExposesMetrics(t *testing.T) {
	r := newTestRouter(t)
	serve(r, http.MethodGet, "/movies", "")

	rr := serve(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "movies_http_requests_total"))
}
