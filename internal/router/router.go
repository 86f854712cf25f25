package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/musicthread-rss/internal/logger"
	mw "github.com/itchan-dev/musicthread-rss/internal/middleware"
	"github.com/itchan-dev/musicthread-rss/internal/middleware/metrics"
	"github.com/itchan-dev/musicthread-rss/internal/middleware/ratelimit"
	"github.com/itchan-dev/musicthread-rss/internal/setup"
)

// New creates the chi router. Everything except /health and /metrics ends up
// in ThreadFeed, which answers unknown paths and methods itself.
func New(deps *setup.Dependencies) http.Handler {
	cfg := deps.Config
	h := deps.Handler

	r := chi.NewRouter()

	r.Use(mw.RequestLogger(logger.Log))
	r.Use(chimw.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}

	// feed readers running in browsers fetch cross-origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Length", mw.RequestIDHeader},
		MaxAge:         86400,
	}))

	r.Use(mw.FeedSecurityHeaders(cfg.SecureHeaders))
	r.Use(chimw.Compress(5, "application/xml", "text/plain"))

	r.Get("/health", h.Health)
	if cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	feed := r.With()
	if deps.Limiter != nil {
		clientKey := ratelimit.ClientIP
		if cfg.RateLimit.TrustProxyHeaders {
			clientKey = ratelimit.ForwardedClientIP
		}
		feed = r.With(ratelimit.Middleware(deps.Limiter, clientKey))
	}
	feed.Handle("/*", http.HandlerFunc(h.ThreadFeed))
	r.NotFound(h.ThreadFeed)
	r.MethodNotAllowed(h.ThreadFeed)

	return r
}
