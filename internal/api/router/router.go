package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	httpmiddleware "github.com/slotwise/scheduler/internal/http/middleware"
	"github.com/slotwise/scheduler/internal/suggest"
	"github.com/slotwise/scheduler/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	SuggestHandler     *suggest.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Rate limiting (optional, enabled when Redis is configured)
	Redis              *redis.Client
	RateLimitPerMinute int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (health checks, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.SuggestHandler.HealthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// API endpoints, rate limited when Redis is available
	r.Group(func(api chi.Router) {
		if cfg.Redis != nil && cfg.RateLimitPerMinute > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.Redis, cfg.RateLimitPerMinute, time.Minute, cfg.Logger))
		}
		api.Post("/suggest", cfg.SuggestHandler.Suggest)
	})

	return r
}
