package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "city-geo-events/docs"
	"city-geo-events/internal/domain/events"
	"city-geo-events/internal/middleware"
	"city-geo-events/internal/platform/logger"
	"city-geo-events/internal/platform/metrics"
	"city-geo-events/internal/session"
)

type Options struct {
	Cache    *events.Cache
	Sessions *session.Registry

	// Explorer puede ser nil: no se montan nearby, event-types ni la creación.
	Explorer events.Explorer
	// Location para horas sin zona en el cuerpo de creación.
	Location *time.Location

	// Gatherer para /metrics. nil = registry global.
	Gatherer prometheus.Gatherer
	Logger   logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log.With(map[string]any{"component": "http"})))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler(opts.Gatherer))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	events.RegisterRoutes(r, opts.Cache, opts.Explorer, opts.Location)
	session.RegisterRoutes(r, opts.Sessions)

	return r
}
