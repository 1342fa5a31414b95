package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la introspección del caché y, si explorer no es nil,
// las operaciones directas al backend. loc interpreta horas sin zona al crear.
func RegisterRoutes(r chi.Router, cache *Cache, explorer Explorer, loc *time.Location) {
	r.Route("/cache", func(cr chi.Router) {
		cr.Get("/stats", cacheStatsHandler(cache))
		cr.Get("/cities", cachedCitiesHandler(cache))
		cr.Get("/cities/{slug}", cacheStatusHandler(cache))
		cr.Delete("/", invalidateHandler(cache))
		cr.Delete("/{slug}", invalidateHandler(cache))
	})

	if explorer == nil {
		return
	}
	if loc == nil {
		loc = time.Local
	}
	r.Get("/cities/{slug}/nearby", nearbyHandler(explorer))
	r.Post("/cities/{slug}/events", createEventHandler(cache, explorer, loc))
	r.Get("/event-types", eventTypesHandler(explorer))
}

// createEventRequest acepta horas RFC3339 o sin zona (se leen en loc).
type createEventRequest struct {
	Title       string    `json:"title"`
	EventType   EventType `json:"event_type"`
	Description string    `json:"description"`
	StartTime   Timestamp `json:"start_time" swaggertype:"string"`
	EndTime     Timestamp `json:"end_time" swaggertype:"string"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Source      Source    `json:"source"`
	SourceURL   string    `json:"source_url"`
	ImageURL    string    `json:"image_url"`
	Price       string    `json:"price"`
	Venue       string    `json:"venue"`
}

func (req createEventRequest) input(loc *time.Location) (EventInput, error) {
	in := EventInput{
		Title:       req.Title,
		EventType:   req.EventType,
		Description: req.Description,
		Lat:         req.Lat,
		Lon:         req.Lon,
		Source:      req.Source,
		SourceURL:   strings.TrimSpace(req.SourceURL),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Price:       strings.TrimSpace(req.Price),
		Venue:       req.Venue,
	}
	start, err := req.StartTime.Parse(loc)
	if err != nil {
		return EventInput{}, fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}
	in.StartTime = start
	if !req.EndTime.IsZero() {
		end, err := req.EndTime.Parse(loc)
		if err != nil {
			return EventInput{}, fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
		}
		in.EndTime = &end
	}
	in = in.Normalize()
	return in, in.Validate()
}

// createEventHandler godoc
// @Summary Crear evento
// @Description Publica un evento en el backend e invalida el caché de la ciudad.
// @Tags cities
// @Accept json
// @Produce json
// @Param slug path string true "Slug de la ciudad"
// @Param body body createEventRequest true "Evento"
// @Success 201 {object} Event
// @Failure 400 {string} string "evento inválido"
// @Failure 502 {string} string "backend unavailable"
// @Router /cities/{slug}/events [post]
func createEventHandler(cache *Cache, explorer Explorer, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		in, err := req.input(loc)
		if err != nil {
			writeError(w, err)
			return
		}

		city := NormalizeCity(chi.URLParam(r, "slug"))
		ev, err := explorer.CreateEvent(r.Context(), city, in)
		if err != nil {
			writeError(w, err)
			return
		}
		// el set cacheado ya no refleja el backend
		if err := cache.Invalidate(r.Context(), city); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, ev)
	}
}

type typeCountResponse struct {
	Type  EventType `json:"type"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}

// cacheStatsHandler godoc
// @Summary Estadísticas del caché
// @Description Estado de cada ciudad en caché. No consulta al backend.
// @Tags cache
// @Produce json
// @Success 200 {object} Stats
// @Failure 500 {string} string "internal error"
// @Router /cache/stats [get]
func cacheStatsHandler(cache *Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := cache.Stats(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// cachedCitiesHandler godoc
// @Summary Ciudades en caché
// @Tags cache
// @Produce json
// @Success 200 {array} string
// @Router /cache/cities [get]
func cachedCitiesHandler(cache *Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cities, err := cache.ListCachedCities(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cities)
	}
}

// cacheStatusHandler godoc
// @Summary Estado de una ciudad en caché
// @Tags cache
// @Produce json
// @Param slug path string true "Slug de la ciudad"
// @Success 200 {object} Status
// @Failure 404 {string} string "city not cached"
// @Router /cache/cities/{slug} [get]
func cacheStatusHandler(cache *Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := cache.StatusOf(r.Context(), chi.URLParam(r, "slug"))
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "city not cached", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// invalidateHandler godoc
// @Summary Invalidar caché
// @Description Sin slug borra todas las ciudades. La próxima consulta va a la red.
// @Tags cache
// @Param slug path string false "Slug de la ciudad"
// @Success 204
// @Failure 500 {string} string "internal error"
// @Router /cache/{slug} [delete]
func invalidateHandler(cache *Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := cache.Invalidate(r.Context(), chi.URLParam(r, "slug")); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// nearbyHandler godoc
// @Summary Eventos cercanos
// @Description Consulta directa al backend; no usa ni modifica el caché.
// @Tags cities
// @Produce json
// @Param slug path string true "Slug de la ciudad"
// @Param lat query number true "Latitud"
// @Param lon query number true "Longitud"
// @Param radius query number false "Radio en metros. Por defecto 1000"
// @Param event_type query string false "Tipo de evento"
// @Success 200 {object} NearbyResult
// @Failure 400 {string} string "lat/lon/radius inválidos"
// @Failure 502 {string} string "backend unavailable"
// @Router /cities/{slug}/nearby [get]
func nearbyHandler(explorer Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		lat, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lat")), 64)
		if err != nil {
			http.Error(w, "lat must be a number", http.StatusBadRequest)
			return
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(q.Get("lon")), 64)
		if err != nil {
			http.Error(w, "lon must be a number", http.StatusBadRequest)
			return
		}
		radius := 1000.0
		if v := strings.TrimSpace(q.Get("radius")); v != "" {
			radius, err = strconv.ParseFloat(v, 64)
			if err != nil || radius <= 0 {
				http.Error(w, "radius must be a positive number", http.StatusBadRequest)
				return
			}
		}

		res, err := explorer.NearbyEvents(r.Context(), chi.URLParam(r, "slug"), lat, lon, radius, EventType(strings.TrimSpace(q.Get("event_type"))))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// eventTypesHandler godoc
// @Summary Tipos de evento
// @Description Tipos presentes en el backend con su etiqueta para la UI.
// @Tags cities
// @Produce json
// @Success 200 {array} typeCountResponse
// @Failure 502 {string} string "backend unavailable"
// @Router /event-types [get]
func eventTypesHandler(explorer Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := explorer.EventTypes(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]typeCountResponse, 0, len(types))
		for _, t := range types {
			out = append(out, typeCountResponse{Type: t.Type, Label: EventTypeLabel(t.Type), Count: t.Count})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNetwork):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
