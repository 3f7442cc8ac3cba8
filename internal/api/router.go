package api

import (
	"hos-log-service/internal/api/handlers"
	"hos-log-service/internal/geometry"
	"hos-log-service/internal/ports"
	"hos-log-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

type RouterConfig struct {
	Repo    ports.TripRepository
	DB      handlers.Pinger
	Layouts map[string]geometry.Layout
	TripLog services.TripLogOptions

	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Router is the service's http.Handler. Close releases the background work
// owned by its middleware.
type Router struct {
	http.Handler
	limiter *rateLimiter
}

func (rt *Router) Close() {
	rt.limiter.Stop()
}

// NewRouter wires HTTP handlers with their dependencies and returns the router.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()
	limiter := newRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	r.Use(middleware.RequestID)
	r.Use(requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	healthHandler := &handlers.HealthHandler{DB: cfg.DB}
	timelineHandler := &handlers.TimelineHandler{}
	gridHandler := &handlers.GridHandler{Layouts: cfg.Layouts}
	tripHandler := &handlers.TripHandler{Repo: cfg.Repo, Options: cfg.TripLog}
	liveHandler := &handlers.LiveHandler{
		Layouts: cfg.Layouts,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
	}

	r.Get("/health", healthHandler.Health)

	// The websocket needs the raw connection, so it stays outside
	// compression and rate limiting.
	r.Get("/live", liveHandler.Serve)

	r.Group(func(r chi.Router) {
		r.Use(compressionMiddleware)
		r.Use(limiter.Handler)

		r.Post("/timelines/day", timelineHandler.Day)
		r.Post("/timelines/window", timelineHandler.Window)

		r.Post("/grids/daily", gridHandler.Daily)
		r.Post("/grids/hos", gridHandler.Hos)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", tripHandler.List)
			r.Post("/", tripHandler.Create)
			r.Get("/{tripID}", tripHandler.Get)
			r.Get("/{tripID}/timeline", tripHandler.Timeline)
			r.Get("/{tripID}/days", tripHandler.Days)
		})
	})

	return &Router{Handler: r, limiter: limiter}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
