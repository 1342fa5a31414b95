package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"city-geo-events/internal/domain/events"
	"city-geo-events/internal/domain/filters"
	"city-geo-events/internal/platform/logger"
)

var (
	ErrNoCity     = errors.New("no city selected")
	ErrSuperseded = errors.New("load superseded by city change")
	ErrNotLoaded  = errors.New("events not loaded")
)

// Loader es lo que la sesión necesita del caché (*events.Cache lo cumple).
type Loader interface {
	GetEvents(ctx context.Context, city string, forceRefresh bool) (events.Result, error)
}

type Options struct {
	// DefaultCity se selecciona sin cargar; la primera vista dispara la carga.
	DefaultCity string
	DisplayCap  int
	Location    *time.Location
	Logger      logger.Logger
}

// Session es el estado de un cliente: ciudad actual, filtros y el set de
// trabajo de esa ciudad. Seguro para uso concurrente.
type Session struct {
	mu sync.Mutex

	loader Loader
	log    logger.Logger
	loc    *time.Location
	now    func() time.Time

	displayCap int

	city      string
	state     *filters.State
	working   []events.Event
	loaded    bool
	stale     bool
	fetchedAt time.Time
}

func New(loader Loader, opts Options) *Session {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		loader:     loader,
		log:        log,
		loc:        loc,
		now:        time.Now,
		displayCap: opts.DisplayCap,
		city:       events.NormalizeCity(opts.DefaultCity),
		state:      filters.NewState(),
	}
}

// Location es la zona usada para "ahora" y para fechas sin zona.
func (s *Session) Location() *time.Location { return s.loc }

func (s *Session) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city
}

// SetCity cambia de ciudad y carga su set. Si durante la carga se cambia
// otra vez de ciudad, devuelve ErrSuperseded y no toca el set de trabajo.
func (s *Session) SetCity(ctx context.Context, city string) error {
	city = events.NormalizeCity(city)
	if city == "" {
		return events.ErrInvalidInput
	}

	s.mu.Lock()
	if s.city != city {
		s.city = city
		s.working = nil
		s.loaded = false
		s.stale = false
		s.fetchedAt = time.Time{}
	}
	s.mu.Unlock()

	return s.load(ctx, false)
}

// Refresh fuerza la recarga de la ciudad actual.
func (s *Session) Refresh(ctx context.Context) error {
	return s.load(ctx, true)
}

// Ensure carga la ciudad actual solo si todavía no hay set de trabajo.
func (s *Session) Ensure(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.load(ctx, false)
}

func (s *Session) load(ctx context.Context, force bool) error {
	s.mu.Lock()
	city := s.city
	s.mu.Unlock()
	if city == "" {
		return ErrNoCity
	}

	res, err := s.loader.GetEvents(ctx, city, force)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.city != city {
		s.log.Debug("dropping superseded load", map[string]any{"city": city, "current": s.city})
		return ErrSuperseded
	}
	if err != nil {
		return err
	}

	s.working = res.Events
	s.loaded = true
	s.stale = res.Stale
	s.fetchedAt = res.FetchedAt
	return nil
}

// UpdateFilters aplica fn sobre el estado de filtros bajo lock.
func (s *Session) UpdateFilters(fn func(st *filters.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *Session) Filters() filters.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

type View struct {
	City       string           `json:"city"`
	TotalCount int              `json:"total_count"`
	Label      string           `json:"label"`
	Stale      bool             `json:"stale"`
	FetchedAt  time.Time        `json:"fetched_at"`
	Malformed  int              `json:"malformed"`
	Filters    filters.Snapshot `json:"filters"`
	Events     []Row            `json:"events"`
}

// Row es un evento listo para mostrar: horas ya interpretadas en la zona de la
// sesión y end_time centinela expuesto como open_ended en vez del año 3000.
type Row struct {
	events.Event
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
	OpenEnded bool       `json:"open_ended"`
}

func newRow(e events.Event, loc *time.Location) Row {
	r := Row{Event: e, OpenEnded: e.IsOpenEnded()}
	if t, err := e.Start(loc); err == nil {
		t = t.In(loc)
		r.Start = &t
	}
	if t, ok := e.End(loc); ok {
		t = t.In(loc)
		r.End = &t
	}
	return r
}

// View aplica los filtros actuales con el tope de la sesión.
func (s *Session) View() (View, error) {
	return s.ViewWithCap(-1)
}

// ViewWithCap usa displayCap; un valor negativo toma el tope de la sesión.
func (s *Session) ViewWithCap(displayCap int) (View, error) {
	s.mu.Lock()
	if !s.loaded {
		city := s.city
		s.mu.Unlock()
		if city == "" {
			return View{}, ErrNoCity
		}
		return View{}, fmt.Errorf("%w for %s", ErrNotLoaded, city)
	}
	snap := s.state.Snapshot()
	working := s.working
	v := View{City: s.city, Stale: s.stale, FetchedAt: s.fetchedAt, Filters: snap}
	if displayCap < 0 {
		displayCap = s.displayCap
	}
	s.mu.Unlock()

	// working nunca se muta en sitio, así que se puede filtrar fuera del lock
	res, err := filters.Apply(working, snap, s.now().In(s.loc), displayCap)
	if err != nil {
		return View{}, err
	}
	v.TotalCount = res.TotalCount
	v.Label = res.Label
	v.Malformed = res.Malformed
	v.Events = make([]Row, 0, len(res.Displayed))
	for _, e := range res.Displayed {
		v.Events = append(v.Events, newRow(e, s.loc))
	}
	return v, nil
}
