package filters

import (
	"fmt"
	"time"
)

type QuickFilter string

const (
	QuickToday    QuickFilter = "today"
	QuickTomorrow QuickFilter = "tomorrow"
	QuickWeek     QuickFilter = "week"
	QuickMonth    QuickFilter = "month"
)

func (q QuickFilter) Valid() bool {
	switch q {
	case QuickToday, QuickTomorrow, QuickWeek, QuickMonth:
		return true
	default:
		return false
	}
}

// Resolve traduce un atajo a un rango concreto respecto de now.
// week y month arrancan en now (no en el inicio del día).
func Resolve(name QuickFilter, now time.Time) (Range, error) {
	switch name {
	case QuickToday:
		return Range{Start: StartOfDay(now), End: EndOfDay(now)}, nil
	case QuickTomorrow:
		d := now.AddDate(0, 0, 1)
		return Range{Start: StartOfDay(d), End: EndOfDay(d)}, nil
	case QuickWeek:
		return Range{Start: now, End: EndOfDay(now.AddDate(0, 0, 7))}, nil
	case QuickMonth:
		return Range{Start: now, End: EndOfDay(now.AddDate(0, 0, 30))}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidFilterName, string(name))
	}
}
