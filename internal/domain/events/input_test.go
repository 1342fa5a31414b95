package events

import (
	"errors"
	"testing"
	"time"
)

func TestEventInput_NormalizeAndValidate(t *testing.T) {
	start := time.Date(2024, 6, 15, 19, 0, 0, 0, time.UTC)
	ok := EventInput{Title: " Джаз ", EventType: " Concert", StartTime: start, Lat: 51.66, Lon: 39.2}.Normalize()
	if ok.Title != "Джаз" || ok.EventType != EventTypeConcert || ok.Source != SourceManual {
		t.Fatalf("unexpected normalized input %#v", ok)
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	before := start.Add(-time.Minute)
	cases := map[string]func(in *EventInput){
		"no title":      func(in *EventInput) { in.Title = "" },
		"no type":       func(in *EventInput) { in.EventType = "" },
		"no start":      func(in *EventInput) { in.StartTime = time.Time{} },
		"lat range":     func(in *EventInput) { in.Lat = 91 },
		"lon range":     func(in *EventInput) { in.Lon = -181 },
		"end too early": func(in *EventInput) { in.EndTime = &before },
	}
	for name, mut := range cases {
		in := ok
		mut(&in)
		if err := in.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}
