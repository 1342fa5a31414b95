package filters

import (
	"errors"
	"testing"
	"time"

	"city-geo-events/internal/domain/events"
)

func TestState_RangeAndQuickAreMutuallyExclusive(t *testing.T) {
	s := NewState()
	day := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	_ = s.SetExplicitRange(day, nil)
	if s.DateMode() != DateModeRange || s.Snapshot().Range == nil {
		t.Fatalf("expected explicit range mode")
	}

	if err := s.SetQuickFilter("Tomorrow"); err != nil {
		t.Fatalf("SetQuickFilter: %v", err)
	}
	if s.DateMode() != DateMode(QuickTomorrow) {
		t.Fatalf("expected tomorrow mode, got %s", s.DateMode())
	}
	if s.Snapshot().Range != nil {
		t.Fatalf("expected range cleared by quick filter")
	}

	_ = s.SetExplicitRange(day, nil)
	if s.DateMode() != DateModeRange {
		t.Fatalf("expected range mode to replace quick filter")
	}

	s.ClearDateFilter()
	if s.DateMode() != DateModeNone || s.Snapshot().Range != nil {
		t.Fatalf("expected none after clear")
	}
}

func TestState_SetExplicitRange_Normalizes(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	s := NewState()
	start := time.Date(2024, 6, 15, 14, 30, 0, 0, loc)
	end := time.Date(2024, 6, 17, 3, 0, 0, 0, loc)
	if err := s.SetExplicitRange(start, &end); err != nil {
		t.Fatalf("SetExplicitRange: %v", err)
	}

	r := s.Snapshot().Range
	if !r.Start.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start %s", r.Start)
	}
	if !r.End.Equal(time.Date(2024, 6, 17, 23, 59, 59, 999000000, loc)) {
		t.Fatalf("unexpected end %s", r.End)
	}
}

func TestState_SetExplicitRange_Invalid(t *testing.T) {
	s := NewState()
	if err := s.SetExplicitRange(time.Time{}, nil); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for zero start, got %v", err)
	}
	start := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	if err := s.SetExplicitRange(start, &end); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for inverted range, got %v", err)
	}
	if s.DateMode() != DateModeNone {
		t.Fatalf("failed set must not change mode")
	}
}

func TestState_SetQuickFilter_Unknown(t *testing.T) {
	s := NewState()
	if err := s.SetQuickFilter("someday"); !errors.Is(err, ErrInvalidFilterName) {
		t.Fatalf("expected ErrInvalidFilterName, got %v", err)
	}
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := NewState()
	s.SetEventTypes([]events.EventType{"sport", " ", "concert"})
	snap := s.Snapshot()

	s.SetEventTypes(nil)
	if len(snap.EventTypes) != 2 || snap.EventTypes[0] != "concert" {
		t.Fatalf("expected sorted snapshot [concert sport], got %v", snap.EventTypes)
	}
}

func TestState_Reset(t *testing.T) {
	s := NewState()
	s.SetEventTypes([]events.EventType{"sport"})
	s.SetSources([]events.Source{"kudago"})
	s.SetQuery("x")
	_ = s.SetQuickFilter("month")

	s.Reset()
	snap := s.Snapshot()
	if len(snap.EventTypes) != 0 || len(snap.Sources) != 0 || snap.Query != "" || snap.DateMode != DateModeNone {
		t.Fatalf("expected empty snapshot after reset, got %#v", snap)
	}
}
