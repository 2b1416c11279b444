package api

import (
	"net/http"

	"github.com/beetlebot/cheepnow/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	AllowedOrigins []string
	RatePerSecond  float64
	RateBurst      int
	Gatherer       prometheus.Gatherer
}

func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(MetricsMiddleware(h.deps.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	limiter := NewRateLimiter(opts.RatePerSecond, opts.RateBurst, h.deps.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Get("/airports", h.Airports)
		r.Get("/airlines", h.Airlines)
		r.Get("/routes/popular", h.PopularRoutes)

		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Put("/preferences", h.UpdatePreferences)

			r.Post("/search", h.Search)
			r.Get("/flights", h.LastResult)
			r.Get("/history", h.History)

			r.Get("/locks", h.ListLocks)
			r.Post("/locks", h.LockFlight)
			r.Get("/locks/{flightID}", h.LockStatus)
			r.Delete("/locks/{flightID}", h.ReleaseLock)
		})
	})

	logging.Info("router initialized", "allowed_origins", opts.AllowedOrigins)
	return r
}
