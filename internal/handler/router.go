package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zhouzirui/movies/backend/internal/handler/movie"
	middlewarePkg "github.com/zhouzirui/movies/backend/internal/middleware"
	movieService "github.com/zhouzirui/movies/backend/internal/service/movie"
	"github.com/zhouzirui/movies/backend/pkg/utils"
)

// Options carries the router's collaborators besides the movie service.
type Options struct {
	AllowedOrigins []string
	Logger         *zap.Logger
	// Registry receives the HTTP metrics; a fresh one is created when nil.
	Registry *prometheus.Registry
}

// NewRouter wires HTTP routes to core services.
func NewRouter(movies *movieService.Service, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logging(opts.Logger))
	r.Use(middlewarePkg.Metrics(opts.Registry))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))
	r.Use(middleware.GetHead)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"movies": movies.Count(),
		})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	movie.New(movies, opts.Logger).RegisterRoutes(r)

	return r
}
