package events

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"city-geo-events/internal/platform/logger"
	"city-geo-events/internal/platform/metrics"
)

const DefaultTTL = 30 * time.Minute

type CacheOptions struct {
	TTL     time.Duration
	Fetch   FetchOptions
	Logger  logger.Logger
	Metrics *metrics.Cache
}

// Cache mantiene el set de eventos por ciudad con TTL.
// Como máximo hay una fetch en vuelo por ciudad; los callers concurrentes
// se suman a la misma.
type Cache struct {
	store  EntryStore
	source Fetcher
	ttl    time.Duration
	fetch  FetchOptions
	log    logger.Logger
	m      *metrics.Cache
	now    func() time.Time

	group singleflight.Group

	// mu protege gens/inflight y serializa Put contra Invalidate.
	mu       sync.Mutex
	gens     map[string]uint64
	epoch    uint64
	inflight map[string]int
	fetches  int
}

func NewCache(store EntryStore, source Fetcher, opts CacheOptions) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{
		store:  store,
		source: source,
		ttl:    ttl,
		fetch:  opts.Fetch,
		log:    log.With(map[string]any{"component": "event_cache"}),
		m:      opts.Metrics,
		now:    time.Now,
		gens:     make(map[string]uint64),
		inflight: make(map[string]int),
	}
}

func (c *Cache) TTL() time.Duration { return c.ttl }

// Result es lo que recibe la capa de render.
// Stale=true significa que el refresh falló y se sirvió la última copia.
type Result struct {
	City      string
	Events    []Event
	FetchedAt time.Time
	FromCache bool
	Stale     bool
	FetchErr  error
}

// GetEvents devuelve los eventos de city. Solo falla si no hay copia en caché
// y la fetch remota falla.
func (c *Cache) GetEvents(ctx context.Context, city string, forceRefresh bool) (Result, error) {
	city = NormalizeCity(city)
	if city == "" {
		return Result{}, ErrInvalidInput
	}

	entry, err := c.store.Get(ctx, city)
	hasEntry := err == nil
	if err != nil && !errors.Is(err, ErrEntryNotFound) {
		return Result{}, err
	}

	if !forceRefresh && hasEntry && c.valid(entry, c.now()) {
		c.m.Lookup(city, "hit")
		c.log.Debug("cache hit", map[string]any{"city": city, "count": len(entry.Events)})
		return Result{
			City:      city,
			Events:    slices.Clone(entry.Events),
			FetchedAt: entry.FetchedAt,
			FromCache: true,
		}, nil
	}

	switch {
	case forceRefresh:
		c.m.Lookup(city, "forced")
	case hasEntry:
		c.m.Lookup(city, "expired")
	default:
		c.m.Lookup(city, "miss")
	}

	fresh, ferr := c.fetchShared(ctx, city)
	if ferr == nil {
		return Result{
			City:      city,
			Events:    slices.Clone(fresh.Events),
			FetchedAt: fresh.FetchedAt,
		}, nil
	}

	// el caller abandonó: no tiene sentido servir nada
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	// Puede haber quedado una copia nueva de otra fetch; se relee.
	if old, err := c.store.Get(ctx, city); err == nil {
		c.m.Lookup(city, "stale")
		c.log.Warn("serving stale cache", map[string]any{
			"city":       city,
			"count":      len(old.Events),
			"fetched_at": old.FetchedAt.Format(time.RFC3339),
			"error":      ferr.Error(),
		})
		return Result{
			City:      city,
			Events:    slices.Clone(old.Events),
			FetchedAt: old.FetchedAt,
			FromCache: true,
			Stale:     true,
			FetchErr:  ferr,
		}, nil
	}

	c.log.Error("events unavailable", map[string]any{"city": city, "error": ferr.Error()})
	return Result{}, ferr
}

func (c *Cache) fetchShared(ctx context.Context, city string) (Entry, error) {
	c.mu.Lock()
	epoch, gen := c.epoch, c.gens[city]
	c.mu.Unlock()

	ch := c.group.DoChan(city, func() (any, error) {
		// La fetch compartida no depende de la cancelación de un caller puntual.
		fctx := context.WithoutCancel(ctx)

		c.mu.Lock()
		c.fetches++
		c.inflight[city]++
		c.mu.Unlock()
		defer c.doneInflight(city)

		start := time.Now()
		evs, err := c.source.FetchCityEvents(fctx, city, c.fetch)
		c.m.Fetch(city, err == nil, time.Since(start))
		if err != nil {
			return Entry{}, err
		}

		e := Entry{City: city, Events: slices.Clone(evs), FetchedAt: c.now()}

		c.mu.Lock()
		defer c.mu.Unlock()
		// Si invalidaron mientras volaba la fetch, no se guarda: el próximo
		// GetEvents tiene que ir a la red.
		if c.epoch != epoch || c.gens[city] != gen {
			c.log.Debug("discarding fetch after invalidation", map[string]any{"city": city})
			return e, nil
		}
		if err := c.store.Put(fctx, e); err != nil {
			return Entry{}, err
		}
		c.updateEntriesGauge(fctx)

		c.log.Info("events fetched", map[string]any{"city": city, "count": len(e.Events)})
		return e, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return Entry{}, r.Err
		}
		return r.Val.(Entry), nil
	case <-ctx.Done():
		return Entry{}, ctx.Err()
	}
}

func (c *Cache) doneInflight(city string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[city]--; c.inflight[city] <= 0 {
		delete(c.inflight, city)
	}
}

// Invalidate borra una ciudad, o todas si city es vacío.
// Una fetch en vuelo no se cancela: sus callers ya unidos reciben su resultado,
// pero no se guarda y el siguiente GetEvents inicia otra.
func (c *Cache) Invalidate(ctx context.Context, city string) error {
	city = NormalizeCity(city)

	c.mu.Lock()
	defer c.mu.Unlock()

	if city == "" {
		c.epoch++
		cities, _ := c.store.Cities(ctx)
		for _, k := range cities {
			c.group.Forget(k)
		}
		// también las ciudades que nunca llegaron al store
		for k := range c.inflight {
			c.group.Forget(k)
		}
		if err := c.store.Clear(ctx); err != nil {
			return err
		}
		c.log.Info("cache cleared", nil)
		c.updateEntriesGauge(ctx)
		return nil
	}

	c.gens[city]++
	c.group.Forget(city)
	if err := c.store.Delete(ctx, city); err != nil && !errors.Is(err, ErrEntryNotFound) {
		return err
	}
	c.log.Info("cache invalidated", map[string]any{"city": city})
	c.updateEntriesGauge(ctx)
	return nil
}

// ListCachedCities devuelve los slugs en caché, ordenados.
func (c *Cache) ListCachedCities(ctx context.Context) ([]string, error) {
	cities, err := c.store.Cities(ctx)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(cities)
	sort.Strings(out)
	return out, nil
}

type Status struct {
	City           string    `json:"city"`
	EventCount     int       `json:"event_count"`
	LastUpdate     time.Time `json:"last_update"`
	IsValid        bool      `json:"is_valid"`
	TimeToExpireMs int64     `json:"time_to_expire_ms"`
}

// StatusOf es solo introspección; no toca la red ni el store.
func (c *Cache) StatusOf(ctx context.Context, city string) (Status, error) {
	city = NormalizeCity(city)
	e, err := c.store.Get(ctx, city)
	if err != nil {
		return Status{}, err
	}
	return c.statusOf(e, c.now()), nil
}

type Stats struct {
	TotalCities int               `json:"total_cities"`
	Cities      map[string]Status `json:"cities"`
	TTLMs       int64             `json:"ttl_ms"`
	Fetches     int               `json:"fetches"`
	InFlight    []string          `json:"in_flight"`
}

func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	cities, err := c.ListCachedCities(ctx)
	if err != nil {
		return Stats{}, err
	}

	now := c.now()
	out := Stats{
		Cities:   make(map[string]Status, len(cities)),
		TTLMs:    c.TTL().Milliseconds(),
		Fetches:  c.Fetches(),
		InFlight: c.inFlight(),
	}
	for _, city := range cities {
		e, err := c.store.Get(ctx, city)
		if err != nil {
			continue
		}
		out.Cities[city] = c.statusOf(e, now)
	}
	out.TotalCities = len(out.Cities)
	return out, nil
}

// Fetches cuenta las fetches remotas iniciadas (diagnóstico).
func (c *Cache) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

func (c *Cache) inFlight() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.inflight))
	for k := range c.inflight {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Cache) statusOf(e Entry, now time.Time) Status {
	st := Status{
		City:       e.City,
		EventCount: len(e.Events),
		LastUpdate: e.FetchedAt,
		IsValid:    c.valid(e, now),
	}
	if st.IsValid {
		st.TimeToExpireMs = (c.ttl - now.Sub(e.FetchedAt)).Milliseconds()
	}
	return st
}

func (c *Cache) valid(e Entry, now time.Time) bool {
	if e.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(e.FetchedAt) < c.ttl
}

func (c *Cache) updateEntriesGauge(ctx context.Context) {
	if cities, err := c.store.Cities(ctx); err == nil {
		c.m.Entries(len(cities))
	}
}

// NormalizeCity deja el slug en minúsculas y sin espacios.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
