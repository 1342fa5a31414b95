package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"city-geo-events/internal/domain/events"
)

// ErrNotFound es el mismo sentinel del dominio para que errors.Is funcione.
var ErrNotFound = events.ErrEntryNotFound

type entryStore struct {
	mu     sync.RWMutex
	byCity map[string]events.Entry
}

func NewEntryStore() events.EntryStore {
	return &entryStore{
		byCity: make(map[string]events.Entry),
	}
}

func (s *entryStore) Get(ctx context.Context, city string) (events.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byCity[city]
	if !ok {
		return events.Entry{}, ErrNotFound
	}
	return e, nil
}

// Put reemplaza la entry completa. Guarda su propia copia del slice para que
// nadie pueda mutar lo almacenado.
func (s *entryStore) Put(ctx context.Context, e events.Entry) error {
	if strings.TrimSpace(e.City) == "" {
		return errors.New("entry city required")
	}
	e.Events = slices.Clone(e.Events)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCity[e.City] = e
	return nil
}

func (s *entryStore) Delete(ctx context.Context, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byCity[city]; !ok {
		return ErrNotFound
	}
	delete(s.byCity, city)
	return nil
}

func (s *entryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCity = make(map[string]events.Entry)
	return nil
}

func (s *entryStore) Cities(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.byCity))
	for k := range s.byCity {
		out = append(out, k)
	}
	return out, nil
}
