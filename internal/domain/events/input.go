package events

import (
	"fmt"
	"strings"
	"time"
)

// EventInput es el cuerpo para crear un evento en el backend.
type EventInput struct {
	Title       string     `json:"title"`
	EventType   EventType  `json:"event_type"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Source      Source     `json:"source,omitempty"`
	SourceURL   string     `json:"source_url,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Price       string     `json:"price,omitempty"`
	Venue       string     `json:"venue,omitempty"`
}

// Normalize recorta espacios y pone source=manual si viene vacío.
func (in EventInput) Normalize() EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.EventType = EventType(strings.ToLower(strings.TrimSpace(string(in.EventType))))
	in.Source = Source(strings.ToLower(strings.TrimSpace(string(in.Source))))
	if in.Source == "" {
		in.Source = SourceManual
	}
	in.Description = strings.TrimSpace(in.Description)
	in.Venue = strings.TrimSpace(in.Venue)
	return in
}

func (in EventInput) Validate() error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case in.EventType == "":
		return fmt.Errorf("%w: event_type is required", ErrInvalidInput)
	case in.StartTime.IsZero():
		return fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	case in.Lat < -90 || in.Lat > 90:
		return fmt.Errorf("%w: lat out of range", ErrInvalidInput)
	case in.Lon < -180 || in.Lon > 180:
		return fmt.Errorf("%w: lon out of range", ErrInvalidInput)
	case in.EndTime != nil && in.EndTime.Before(in.StartTime):
		return fmt.Errorf("%w: end_time before start_time", ErrInvalidInput)
	}
	return nil
}
