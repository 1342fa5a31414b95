package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache agrupa los collectors del caché de eventos.
// Un nil *Cache es válido: todos los métodos son no-op.
type Cache struct {
	lookups      *prometheus.CounterVec
	fetches      *prometheus.CounterVec
	fetchSeconds prometheus.Histogram
	entries      prometheus.Gauge
}

// NewCache registra los collectors en reg. Si reg es nil usa un registry propio.
func NewCache(reg prometheus.Registerer) *Cache {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &Cache{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citygeo",
			Subsystem: "event_cache",
			Name:      "lookups_total",
			Help:      "Event cache lookups by result (hit, miss, forced, stale).",
		}, []string{"city", "result"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citygeo",
			Subsystem: "event_cache",
			Name:      "fetches_total",
			Help:      "Remote event fetches by status.",
		}, []string{"city", "status"}),
		fetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "citygeo",
			Subsystem: "event_cache",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of remote event fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "citygeo",
			Subsystem: "event_cache",
			Name:      "entries",
			Help:      "Number of cities currently cached.",
		}),
	}

	reg.MustRegister(c.lookups, c.fetches, c.fetchSeconds, c.entries)
	return c
}

func (c *Cache) Lookup(city, result string) {
	if c == nil {
		return
	}
	c.lookups.WithLabelValues(city, result).Inc()
}

func (c *Cache) Fetch(city string, ok bool, d time.Duration) {
	if c == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	c.fetches.WithLabelValues(city, status).Inc()
	c.fetchSeconds.Observe(d.Seconds())
}

func (c *Cache) Entries(n int) {
	if c == nil {
		return
	}
	c.entries.Set(float64(n))
}

// Handler expone el registry en formato Prometheus.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
