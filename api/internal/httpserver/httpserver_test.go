package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"derma-ai/api/internal/config"
	"derma-ai/api/internal/genlang"
	"derma-ai/api/internal/handle"
	"derma-ai/api/internal/vision"
)

func testServer() http.Handler {
	cfg := &config.Config{
		CORSOrigins: []string{"*"},
		BodyLimit:   "10M",
	}
	log := zerolog.Nop()
	vc := vision.NewClient("", "http://unused.invalid", nil, log)
	gen := genlang.New("", nil, log)
	return New(cfg, log, handle.New(cfg, vc, gen, log))
}

func TestHealthRoute(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeRouteRejectsMissingBody(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
