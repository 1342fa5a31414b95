package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestEvent_DecodeBackendPayload(t *testing.T) {
	raw := `[
		{"id": 42, "title": "Джаз", "event_type": "concert", "start_time": "2024-06-15T19:00:00",
		 "end_time": null, "lat": 51.66, "lon": 39.2, "source": "kudago", "venue": "Филармония"},
		{"id": "tg-7", "title": "Ремонт дороги", "event_type": "repair", "start_time": "not a date",
		 "end_time": "9999-12-31T00:00:00", "lat": 51.6, "lon": 39.1, "source": "telegram"},
		{"id": 43, "title": "Выставка", "event_type": "exhibition", "start_time": 1718470800,
		 "lat": 0, "lon": 0}
	]`

	var evs []Event
	if err := json.Unmarshal([]byte(raw), &evs); err != nil {
		t.Fatalf("decode must not fail on bad dates: %v", err)
	}
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evs))
	}

	if evs[0].ID != "42" || evs[1].ID != "tg-7" {
		t.Fatalf("unexpected ids %q %q", evs[0].ID, evs[1].ID)
	}

	loc := time.FixedZone("MSK", 3*3600)
	st, err := evs[0].Start(loc)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if want := time.Date(2024, 6, 15, 19, 0, 0, 0, loc); !st.Equal(want) {
		t.Fatalf("expected zoneless start read in loc, got %s", st)
	}
	if _, ok := evs[0].End(loc); ok {
		t.Fatalf("expected no end for null end_time")
	}

	if _, err := evs[1].Start(loc); !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent, got %v", err)
	}
	if !evs[1].IsOpenEnded() {
		t.Fatalf("expected 9999 end_time to be open-ended")
	}
	if _, ok := evs[1].End(loc); ok {
		t.Fatalf("open-ended end must not be reported as a date")
	}

	if _, err := evs[2].Start(loc); !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("expected numeric start_time to be malformed, got %v", err)
	}
}

func TestTimestamp_Layouts(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-06-15T23:00:00Z", time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)},
		{"2024-06-15T23:00:00.123456", time.Date(2024, 6, 15, 23, 0, 0, 123456000, time.UTC)},
		{"2024-06-15 08:30:00", time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)},
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-06-15T20:00:00+03:00", time.Date(2024, 6, 15, 17, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := Timestamp{Raw: tc.raw}.Parse(time.UTC)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.raw, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("Parse(%q): expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}

func TestTimestamp_MarshalPassthrough(t *testing.T) {
	b, err := json.Marshal(Event{ID: "1", StartTime: Timestamp{Raw: "2024-06-15T19:00:00"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(b, &back)
	if back["start_time"] != "2024-06-15T19:00:00" {
		t.Fatalf("expected raw start_time passthrough, got %#v", back["start_time"])
	}
	if back["end_time"] != nil {
		t.Fatalf("expected null end_time, got %#v", back["end_time"])
	}
}

func TestLabels_Fallback(t *testing.T) {
	if got := EventTypeLabel(EventTypeAccident); got != "ДТП" {
		t.Fatalf("expected ДТП, got %q", got)
	}
	if got := EventTypeLabel("flashmob"); got != "flashmob" {
		t.Fatalf("expected raw unknown type, got %q", got)
	}
	if got := EventTypeLabel(""); got != "Другое" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := SourceLabel(SourceYandexAfisha); got != "Яндекс Афиша" {
		t.Fatalf("unexpected source label %q", got)
	}
	if got := SourceLabel(" "); got != "Другое" {
		t.Fatalf("expected fallback for blank source, got %q", got)
	}
	if Source("vk").Known() || !EventTypeCityEvent.Known() {
		t.Fatalf("unexpected Known() result")
	}
}
