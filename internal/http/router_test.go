package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govportal/internal/platform/config"
	"govportal/internal/platform/logger"
	"govportal/internal/platform/middleware"
	"govportal/pkg/platform/httputil"
	"govportal/pkg/requestcontext"
)

type echoModule struct{}

func (echoModule) Register(r chi.Router) {
	r.Post("/api/echo", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"requestId": requestcontext.RequestID(r.Context()),
			"clientIp":  requestcontext.ClientIP(r.Context()),
			"hasTime":   !requestcontext.Now(r.Context()).IsZero(),
		})
	})
	r.Get("/api/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

func newRouter() http.Handler {
	return NewRouter(config.ServerConfig{RequestTimeout: time.Second}, logger.Discard(), nil, echoModule{})
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRequestContextIsPopulated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()

	newRouter().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"requestId":"req-42","clientIp":"203.0.113.9","hasTime":true}`, rec.Body.String())
	assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
}

func TestNonJSONBodyIsRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	newRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPanicBecomesInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())
}
