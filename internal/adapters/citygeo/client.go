package citygeo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"city-geo-events/internal/domain/events"
	"city-geo-events/internal/platform/httpclient"
	"city-geo-events/internal/platform/logger"
	"city-geo-events/internal/platform/retry"
)

var (
	ErrCityGeoNotConfigured = errors.New("citygeo client not configured")
)

// Config del cliente del backend city-geo.
// BaseURL apunta al prefijo /api (p.ej. http://localhost:8000/api).
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	Retry  retry.Policy
	Logger logger.Logger
}

// Client implementa events.Fetcher sobre la API REST.
type Client struct {
	http  *httpclient.Client
	retry retry.Policy
	log   logger.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrCityGeoNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.UserAgent = strings.TrimSpace(cfg.UserAgent)

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		http:  hc,
		retry: cfg.Retry,
		log:   log.With(map[string]any{"component": "citygeo"}),
	}, nil
}

// FetchCityEvents trae el set completo de una ciudad.
// GET /cities/{slug}/events?event_type=&upcoming_only=true
func (c *Client) FetchCityEvents(ctx context.Context, city string, opts events.FetchOptions) ([]events.Event, error) {
	city = events.NormalizeCity(city)
	if city == "" {
		return nil, events.ErrInvalidInput
	}

	q := url.Values{}
	if opts.EventType != "" {
		q.Set("event_type", string(opts.EventType))
	}
	if opts.UpcomingOnly {
		q.Set("upcoming_only", "true")
	}

	var out []events.Event
	if err := c.get(ctx, "/cities/"+url.PathEscape(city)+"/events", q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []events.Event{}
	}
	return out, nil
}

// NearbyEvents consulta eventos en un radio (metros). No pasa por el caché.
// GET /cities/{slug}/events/nearby?lat=&lon=&radius=&event_type=
func (c *Client) NearbyEvents(ctx context.Context, city string, lat, lon, radius float64, eventType events.EventType) (events.NearbyResult, error) {
	city = events.NormalizeCity(city)
	if city == "" || radius <= 0 {
		return events.NearbyResult{}, events.ErrInvalidInput
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	if eventType != "" {
		q.Set("event_type", string(eventType))
	}

	var out events.NearbyResult
	if err := c.get(ctx, "/cities/"+url.PathEscape(city)+"/events/nearby", q, &out); err != nil {
		return events.NearbyResult{}, err
	}
	if out.Events == nil {
		out.Events = []events.NearbyEvent{}
	}
	return out, nil
}

// EventTypes devuelve los tipos presentes en el backend con su conteo.
func (c *Client) EventTypes(ctx context.Context) ([]events.TypeCount, error) {
	var out []events.TypeCount
	if err := c.get(ctx, "/events/types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEvent publica un evento en la ciudad y devuelve el registro creado.
// POST /cities/{slug}/events. No se reintenta: el POST no es idempotente.
func (c *Client) CreateEvent(ctx context.Context, city string, in events.EventInput) (events.Event, error) {
	city = events.NormalizeCity(city)
	if city == "" {
		return events.Event{}, events.ErrInvalidInput
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return events.Event{}, err
	}

	path := "/cities/" + url.PathEscape(city) + "/events"
	var out events.Event
	err := c.http.DoJSON(ctx, http.MethodPost, path, nil, in, &out)
	if err == nil {
		c.log.Info("event created", map[string]any{"city": city, "id": string(out.ID)})
		return out, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return events.Event{}, err
	}
	var he *httpclient.HTTPError
	if errors.As(err, &he) && (he.StatusCode == http.StatusBadRequest || he.StatusCode == http.StatusUnprocessableEntity) {
		return events.Event{}, fmt.Errorf("%w: POST %s: %w", events.ErrInvalidInput, path, err)
	}
	return events.Event{}, fmt.Errorf("%w: POST %s: %w", events.ErrNetwork, path, err)
}

// get aplica la política de reintentos y normaliza el error a events.ErrNetwork.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	attempt := 0
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		attempt++
		err := c.http.GetJSON(ctx, path, q, out)
		if err == nil {
			return nil
		}
		if !httpclient.IsTemporary(err) {
			return retry.Permanent(err)
		}
		c.log.Debug("request failed, retrying", map[string]any{"path": path, "attempt": attempt, "error": err.Error()})
		return err
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: GET %s: %w", events.ErrNetwork, path, err)
}
