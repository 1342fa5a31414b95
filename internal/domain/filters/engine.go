package filters

import (
	"errors"
	"strings"
	"time"

	"city-geo-events/internal/domain/events"
)

// Result es lo que consume la capa de render.
// TotalCount siempre es len(Filtered); el tope solo recorta Displayed.
type Result struct {
	Filtered   []events.Event
	Displayed  []events.Event
	TotalCount int
	Label      string

	// Malformed cuenta eventos excluidos por start_time ilegible.
	Malformed int
}

// Apply filtra events según snap. Es puro y conserva el orden de entrada.
// displayCap <= 0 significa sin tope.
func Apply(evs []events.Event, snap Snapshot, now time.Time, displayCap int) (Result, error) {
	rng, hasDate, err := dateRange(snap, now)
	if err != nil {
		return Result{}, err
	}

	loc := now.Location()
	query := strings.ToLower(snap.Query)

	var res Result
	res.Filtered = make([]events.Event, 0, len(evs))

	for _, e := range evs {
		if !snap.hasType(e.EventType) {
			continue
		}
		if !snap.hasSource(e.Source) {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		if hasDate {
			st, err := e.Start(loc)
			if err != nil {
				if errors.Is(err, events.ErrMalformedEvent) {
					res.Malformed++
				}
				continue
			}
			if !rng.Contains(st) {
				continue
			}
		}
		res.Filtered = append(res.Filtered, e)
	}

	res.TotalCount = len(res.Filtered)
	res.Displayed = res.Filtered
	if displayCap > 0 && len(res.Filtered) > displayCap {
		res.Displayed = res.Filtered[:displayCap:displayCap]
	}
	res.Label = Label(res.TotalCount, len(res.Displayed))
	return res, nil
}

func dateRange(snap Snapshot, now time.Time) (Range, bool, error) {
	switch snap.DateMode {
	case "", DateModeNone:
		return Range{}, false, nil
	case DateModeRange:
		if snap.Range == nil {
			return Range{}, false, ErrInvalidRange
		}
		return *snap.Range, true, nil
	default:
		r, err := Resolve(QuickFilter(snap.DateMode), now)
		if err != nil {
			return Range{}, false, err
		}
		return r, true, nil
	}
}

func matchesQuery(e events.Event, q string) bool {
	for _, f := range []string{e.Title, e.Description, e.Venue} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
