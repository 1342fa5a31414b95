package events

import (
	"context"
	"errors"
	"time"
)

var ErrEntryNotFound = errors.New("cache entry not found")

// Entry es el set completo (sin filtrar) de una ciudad.
// Se reemplaza entero en cada refresh; nunca se muta en sitio.
type Entry struct {
	City      string
	Events    []Event
	FetchedAt time.Time
}

// EntryStore guarda una Entry por slug de ciudad.
type EntryStore interface {
	Get(ctx context.Context, city string) (Entry, error)
	Put(ctx context.Context, e Entry) error
	Delete(ctx context.Context, city string) error
	Clear(ctx context.Context) error
	Cities(ctx context.Context) ([]string, error)
}

type FetchOptions struct {
	EventType    EventType
	UpcomingOnly bool
}

// Fetcher es la frontera con el backend REST.
// Las fallas deben envolver ErrNetwork.
type Fetcher interface {
	FetchCityEvents(ctx context.Context, city string, opts FetchOptions) ([]Event, error)
}

// Explorer son las operaciones contra el backend que no pasan por el caché.
type Explorer interface {
	NearbyEvents(ctx context.Context, city string, lat, lon, radius float64, eventType EventType) (NearbyResult, error)
	EventTypes(ctx context.Context) ([]TypeCount, error)
	CreateEvent(ctx context.Context, city string, in EventInput) (Event, error)
}
