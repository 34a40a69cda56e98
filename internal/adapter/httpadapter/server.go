package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
	"github.com/couchcryptid/earthquake-dashboard/internal/observability"
)

// Dashboard is the set of operations the routes are built on.
type Dashboard interface {
	CheckReadiness(ctx context.Context) error
	RegionEvents(ctx context.Context, loc domain.Location, days int) ([]domain.SimplifiedEvent, error)
	Rankings(ctx context.Context, limit int) ([]domain.RawFeature, *domain.RawFeature, error)
	GenerateGraph(ctx context.Context, days int, lat, lon, radius float64, titleSuffix string) ([]byte, error)
}

// AppInfo describes the running service for /info and /status.
type AppInfo struct {
	Name        string
	Version     string
	Author      string
	Description string
	StartedAt   time.Time
}

// Server exposes the dashboard pages, JSON endpoints, charts, health, and metrics.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with all dashboard routes registered.
func NewServer(addr string, dash Dashboard, info AppInfo, metrics *observability.Metrics, logger *slog.Logger) *Server {
	h := &handlers{
		dash:   dash,
		info:   info,
		pages:  mustParseTemplates(),
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestObserver(metrics, logger))

	r.Get("/", h.mainPage)
	r.Get("/ping", h.ping)
	r.Get("/health", h.health)
	r.Get("/status", h.status)
	r.Get("/info", h.appInfo)

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/ready", sharedobs.ReadinessHandler(dash))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/telaviv-earthquakes", h.telAvivEvents)
	r.Get("/earthquakes", h.regionEvents)
	r.Get("/graph-earthquakes.png", h.graphImage)
	r.Get("/graph-earthquakes-5years.png", h.graphFiveYearsImage)
	r.Get("/graph-earthquakes", h.graphPage)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
