package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNetwork agrupa fallas de transporte y respuestas no-2xx del backend.
	ErrNetwork = errors.New("network error")

	// ErrMalformedEvent se devuelve por evento; nunca aborta un lote.
	ErrMalformedEvent = errors.New("malformed event data")
)

// openEndedYear: desde este año end_time se considera centinela de "permanente".
const openEndedYear = 3000

// EventID acepta id numérico o string en el JSON del backend.
type EventID string

func (id *EventID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EventID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("event id: %w", err)
	}
	*id = EventID(n.String())
	return nil
}

// Timestamp guarda el valor crudo y se interpreta al leerlo.
// Un valor inválido no rompe el decode del lote.
type Timestamp struct {
	Raw string
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		ts.Raw = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// número u otro tipo: se conserva crudo y queda como inválido
		ts.Raw = string(b)
		return nil
	}
	ts.Raw = strings.TrimSpace(s)
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Raw)
}

func (ts Timestamp) IsZero() bool { return ts.Raw == "" }

// Parse interpreta el valor. Los valores sin zona se leen en loc.
func (ts Timestamp) Parse(loc *time.Location) (time.Time, error) {
	if ts.Raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrMalformedEvent)
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, ts.Raw); err == nil {
		return t, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, ts.Raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable timestamp %q", ErrMalformedEvent, ts.Raw)
}

// At construye un Timestamp desde un time.Time (tests, eventos locales).
func At(t time.Time) Timestamp {
	return Timestamp{Raw: t.Format(time.RFC3339Nano)}
}

// Event es un registro del backend. Inmutable una vez recibido.
type Event struct {
	ID          EventID   `json:"id"`
	Title       string    `json:"title"`
	EventType   EventType `json:"event_type"`
	Description string    `json:"description,omitempty"`

	StartTime Timestamp `json:"start_time"`
	EndTime   Timestamp `json:"end_time"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	Source    Source `json:"source,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Price     string `json:"price,omitempty"`
	Venue     string `json:"venue,omitempty"`

	CreatedAt Timestamp `json:"created_at"`
}

// Start devuelve start_time o un error ErrMalformedEvent.
func (e Event) Start(loc *time.Location) (time.Time, error) {
	t, err := e.StartTime.Parse(loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("event %s start_time: %w", e.ID, err)
	}
	return t, nil
}

// End devuelve end_time si existe, es válido y no es el centinela de permanente.
func (e Event) End(loc *time.Location) (time.Time, bool) {
	t, err := e.EndTime.Parse(loc)
	if err != nil || t.Year() >= openEndedYear {
		return time.Time{}, false
	}
	return t, true
}

// IsOpenEnded indica evento permanente (end_time centinela lejano).
func (e Event) IsOpenEnded() bool {
	t, err := e.EndTime.Parse(time.UTC)
	return err == nil && t.Year() >= openEndedYear
}

// NearbyEvent es un evento con distancia en metros al punto consultado.
type NearbyEvent struct {
	Event
	Distance float64 `json:"distance"`
}

type NearbyResult struct {
	Count  int           `json:"count"`
	Events []NearbyEvent `json:"events"`
}

// TypeCount es la cantidad de eventos de un tipo en el backend.
type TypeCount struct {
	Type  EventType `json:"type"`
	Count int       `json:"count"`
}
