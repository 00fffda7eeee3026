package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/puppy-bowl-client/internal/http/handlers"
	"github.com/preston-bernstein/puppy-bowl-client/internal/http/middleware"
	"github.com/preston-bernstein/puppy-bowl-client/internal/metrics"
)

// RouterConfig carries the cross-cutting pieces the router wraps routes with.
type RouterConfig struct {
	Logger  *slog.Logger
	Metrics *metrics.Recorder
	// RateLimit is the number of mutations allowed per client IP per minute.
	RateLimit int
	// API, when set, is mounted under APIPrefix (fixture mode).
	API       nethttp.Handler
	APIPrefix string
}

// NewRouter registers the frontend routes on a chi router.
func NewRouter(handler *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", handler.Page)
	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, time.Minute, cfg.Metrics, cfg.Logger))
		r.Post("/refresh", handler.Refresh)
		r.Post("/players", handler.Submit)
		r.Post("/players/{id}/details", handler.Details)
		r.Post("/players/{id}/remove", handler.Remove)
		r.Post("/back", handler.Back)
		r.Post("/form/toggle", handler.ToggleForm)
	})

	if cfg.API != nil && cfg.APIPrefix != "" {
		r.Mount(cfg.APIPrefix, cfg.API)
	}
	return r
}
