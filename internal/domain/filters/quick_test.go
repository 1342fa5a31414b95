package filters

import (
	"errors"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	eod := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 59, 999000000, time.UTC)
	}

	cases := []struct {
		name  QuickFilter
		start time.Time
		end   time.Time
	}{
		{QuickToday, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), eod(2024, 6, 15)},
		{QuickTomorrow, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), eod(2024, 6, 16)},
		{QuickWeek, now, eod(2024, 6, 22)},
		{QuickMonth, now, eod(2024, 7, 15)},
	}
	for _, tc := range cases {
		r, err := Resolve(tc.name, now)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", tc.name, err)
		}
		if !r.Start.Equal(tc.start) || !r.End.Equal(tc.end) {
			t.Fatalf("Resolve(%s): expected [%s, %s], got [%s, %s]", tc.name, tc.start, tc.end, r.Start, r.End)
		}
	}
}

func TestResolve_Today_Boundaries(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	r, _ := Resolve(QuickToday, now)

	if !r.Contains(time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 23:00 same day to be included")
	}
	if r.Contains(time.Date(2024, 6, 16, 0, 30, 0, 0, time.UTC)) {
		t.Fatalf("expected 00:30 next day to be excluded")
	}
}

func TestResolve_WeekStartsAtNow(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	r, _ := Resolve(QuickWeek, now)
	if r.Contains(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("week must not include earlier today")
	}
}

func TestResolve_Unknown(t *testing.T) {
	if _, err := Resolve("fortnight", time.Now()); !errors.Is(err, ErrInvalidFilterName) {
		t.Fatalf("expected ErrInvalidFilterName, got %v", err)
	}
}

func TestLabel_Plurals(t *testing.T) {
	cases := map[int]string{
		0:   "Найдено 0 событий",
		1:   "Найдено 1 событие",
		3:   "Найдено 3 события",
		11:  "Найдено 11 событий",
		21:  "Найдено 21 событие",
		112: "Найдено 112 событий",
		124: "Найдено 124 события",
	}
	for n, want := range cases {
		if got := Label(n, n); got != want {
			t.Fatalf("Label(%d): expected %q, got %q", n, want, got)
		}
	}
	capped := map[[2]int]string{
		{812, 500}: "Показано 500 из 812 событий",
		{3, 2}:     "Показано 2 из 3 событий",
		{21, 20}:   "Показано 20 из 21 события",
		{11, 10}:   "Показано 10 из 11 событий",
	}
	for in, want := range capped {
		if got := Label(in[0], in[1]); got != want {
			t.Fatalf("Label(%d, %d): expected %q, got %q", in[0], in[1], want, got)
		}
	}
}
