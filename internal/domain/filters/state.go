package filters

import (
	"errors"
	"slices"
	"sort"
	"strings"
	"time"

	"city-geo-events/internal/domain/events"
)

var (
	ErrInvalidFilterName = errors.New("invalid filter name")
	ErrInvalidRange      = errors.New("invalid date range")
)

// DateMode es "none", "explicit-range" o el nombre de un quick filter.
type DateMode string

const (
	DateModeNone  DateMode = "none"
	DateModeRange DateMode = "explicit-range"
)

// Range es inclusivo en ambos extremos.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// State es el estado de filtros de una sesión. Sin I/O.
// El cero no es usable; usar NewState.
type State struct {
	eventTypes map[events.EventType]struct{}
	sources    map[events.Source]struct{}
	query      string

	mode DateMode
	rng  *Range
}

func NewState() *State {
	return &State{
		eventTypes: map[events.EventType]struct{}{},
		sources:    map[events.Source]struct{}{},
		mode:       DateModeNone,
	}
}

// SetEventTypes reemplaza la selección. Vacío = sin restricción.
func (s *State) SetEventTypes(types []events.EventType) {
	s.eventTypes = make(map[events.EventType]struct{}, len(types))
	for _, t := range types {
		t = events.EventType(strings.TrimSpace(string(t)))
		if t == "" {
			continue
		}
		s.eventTypes[t] = struct{}{}
	}
}

// SetSources reemplaza la selección. Vacío = sin restricción.
func (s *State) SetSources(sources []events.Source) {
	s.sources = make(map[events.Source]struct{}, len(sources))
	for _, src := range sources {
		src = events.Source(strings.TrimSpace(string(src)))
		if src == "" {
			continue
		}
		s.sources[src] = struct{}{}
	}
}

// SetQuery define la búsqueda de texto libre. Vacío = sin restricción.
func (s *State) SetQuery(q string) {
	s.query = strings.TrimSpace(q)
}

// SetExplicitRange normaliza start al inicio del día y end al final del día,
// en la zona de cada valor. Si end es nil el rango es el día de start.
func (s *State) SetExplicitRange(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return ErrInvalidRange
	}
	e := start
	if end != nil && !end.IsZero() {
		e = *end
	}
	r := Range{Start: StartOfDay(start), End: EndOfDay(e)}
	if r.End.Before(r.Start) {
		return ErrInvalidRange
	}

	s.mode = DateModeRange
	s.rng = &r
	return nil
}

// SetQuickFilter activa un atajo y borra el rango explícito.
func (s *State) SetQuickFilter(name string) error {
	q := QuickFilter(strings.ToLower(strings.TrimSpace(name)))
	if !q.Valid() {
		return ErrInvalidFilterName
	}
	s.mode = DateMode(q)
	s.rng = nil
	return nil
}

func (s *State) ClearDateFilter() {
	s.mode = DateModeNone
	s.rng = nil
}

// Reset vuelve a "sin restricción" en todas las dimensiones.
func (s *State) Reset() {
	s.SetEventTypes(nil)
	s.SetSources(nil)
	s.SetQuery("")
	s.ClearDateFilter()
}

func (s *State) DateMode() DateMode { return s.mode }

// Snapshot es una copia inmutable usada por el engine.
type Snapshot struct {
	EventTypes []events.EventType `json:"event_types"`
	Sources    []events.Source    `json:"sources"`
	Query      string             `json:"query,omitempty"`
	DateMode   DateMode           `json:"date_mode"`
	Range      *Range             `json:"range,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	out := Snapshot{
		EventTypes: make([]events.EventType, 0, len(s.eventTypes)),
		Sources:    make([]events.Source, 0, len(s.sources)),
		Query:      s.query,
		DateMode:   s.mode,
	}
	for t := range s.eventTypes {
		out.EventTypes = append(out.EventTypes, t)
	}
	for src := range s.sources {
		out.Sources = append(out.Sources, src)
	}
	sort.Slice(out.EventTypes, func(i, j int) bool { return out.EventTypes[i] < out.EventTypes[j] })
	sort.Slice(out.Sources, func(i, j int) bool { return out.Sources[i] < out.Sources[j] })
	if s.rng != nil {
		r := *s.rng
		out.Range = &r
	}
	return out
}

func (s Snapshot) hasType(t events.EventType) bool {
	return len(s.EventTypes) == 0 || slices.Contains(s.EventTypes, t)
}

func (s Snapshot) hasSource(src events.Source) bool {
	return len(s.Sources) == 0 || slices.Contains(s.Sources, src)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
