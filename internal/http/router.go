// Package httpapi assembles the HTTP surface: the shared middleware chain,
// operational endpoints and the module handlers.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govportal/internal/platform/config"
	"govportal/internal/platform/metrics"
	"govportal/internal/platform/middleware"
	"govportal/pkg/platform/httputil"
	"govportal/pkg/platform/middleware/metadata"
	"govportal/pkg/platform/middleware/requesttime"
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the middleware chain, /healthz, /metrics and every module.
// m may be nil to skip request metrics.
func NewRouter(cfg config.ServerConfig, logger *slog.Logger, m *metrics.Metrics, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.LatencyMiddleware(m))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if m != nil {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		for _, module := range modules {
			module.Register(r)
		}
	})
	return r
}
