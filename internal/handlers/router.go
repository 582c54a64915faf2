package handlers

import (
	"net/http"

	appmiddleware "themefinder-backend/internal/middleware"
	"themefinder-backend/internal/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	handler *MovieHandler
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewRouter creates a new router instance. metrics may be nil to disable the
// /metrics endpoint and instrumentation.
func NewRouter(handler *MovieHandler, metrics *observability.Collector, logger *zap.Logger) *Router {
	return &Router{
		handler: handler,
		metrics: metrics,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(appmiddleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(appmiddleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(rt.metrics.Middleware)
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/", rt.handler.Welcome)
	router.Get("/health", rt.healthCheck)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	router.Route("/api/movies", func(r chi.Router) {
		r.Get("/", rt.handler.ListMovies)
		r.Get("/id/{id}", rt.handler.GetMovieByID)
		r.Get("/search", rt.handler.SearchMovies)
		r.Get("/year/{year}", rt.handler.GetMoviesByYear)
		r.Get("/summary/{id}", rt.handler.GetMovieSummary)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
