package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"city-geo-events/internal/domain/events"
	"city-geo-events/internal/domain/filters"
)

func RegisterRoutes(r chi.Router, reg *Registry) {
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", createSessionHandler(reg))
		sr.Get("/", countSessionsHandler(reg))

		sr.Route("/{sessionID}", func(one chi.Router) {
			one.Delete("/", deleteSessionHandler(reg))
			one.Put("/city", setCityHandler(reg))
			one.Put("/filters", setFiltersHandler(reg))
			one.Delete("/filters", resetFiltersHandler(reg))
			one.Get("/events", viewHandler(reg))
			one.Post("/refresh", refreshHandler(reg))
		})
	})
}

type sessionResponse struct {
	ID   string `json:"id"`
	City string `json:"city"`
}

type setCityRequest struct {
	City string `json:"city"`
}

type setFiltersRequest struct {
	EventTypes []events.EventType `json:"event_types"`
	Sources    []events.Source    `json:"sources"`
	Query      string             `json:"query"`
	// DateMode: "" / "none", "explicit-range" o today|tomorrow|week|month
	DateMode string `json:"date_mode"`
	Start    string `json:"start"` // YYYY-MM-DD o RFC3339
	End      string `json:"end"`
}

// createSessionHandler godoc
// @Summary Crear sesión de mapa
// @Description Crea una sesión con filtros vacíos. Si el servidor tiene ciudad por defecto, queda seleccionada y se carga en la primera consulta.
// @Tags sessions
// @Produce json
// @Success 201 {object} sessionResponse
// @Router /sessions [post]
func createSessionHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, s := reg.Create()
		writeJSON(w, http.StatusCreated, sessionResponse{ID: id, City: s.City()})
	}
}

type sessionCountResponse struct {
	Active int `json:"active"`
}

// countSessionsHandler godoc
// @Summary Sesiones activas
// @Tags sessions
// @Produce json
// @Success 200 {object} sessionCountResponse
// @Router /sessions [get]
func countSessionsHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionCountResponse{Active: reg.Len()})
	}
}

// deleteSessionHandler godoc
// @Summary Cerrar sesión
// @Tags sessions
// @Param sessionID path string true "ID de la sesión"
// @Success 204
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [delete]
func deleteSessionHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !reg.Delete(chi.URLParam(r, "sessionID")) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// setCityHandler godoc
// @Summary Cambiar ciudad
// @Description Selecciona la ciudad y carga su set de eventos (desde caché si está vigente). Los filtros se conservan.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body setCityRequest true "Slug de la ciudad"
// @Success 200 {object} View
// @Failure 400 {string} string "invalid json / city required"
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "superseded by a newer city change"
// @Failure 502 {string} string "backend unavailable and nothing cached"
// @Router /sessions/{sessionID}/city [put]
func setCityHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookup(w, r, reg)
		if !ok {
			return
		}

		var req setCityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.City) == "" {
			http.Error(w, "city is required", http.StatusBadRequest)
			return
		}

		if err := s.SetCity(r.Context(), req.City); err != nil {
			writeError(w, err)
			return
		}
		writeView(w, s, -1)
	}
}

// setFiltersHandler godoc
// @Summary Definir filtros
// @Description Reemplaza tipos, fuentes, búsqueda y filtro de fecha. Si algo es inválido no se modifica nada.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body setFiltersRequest true "Filtros"
// @Success 200 {object} filters.Snapshot
// @Failure 400 {string} string "invalid filter name / invalid date range"
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/filters [put]
func setFiltersHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookup(w, r, reg)
		if !ok {
			return
		}

		var req setFiltersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		apply, err := dateSetter(req, s.Location())
		if err != nil {
			writeError(w, err)
			return
		}

		err = s.UpdateFilters(func(st *filters.State) error {
			if err := apply(st); err != nil {
				return err
			}
			st.SetEventTypes(req.EventTypes)
			st.SetSources(req.Sources)
			st.SetQuery(req.Query)
			return nil
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Filters())
	}
}

// resetFiltersHandler godoc
// @Summary Limpiar filtros
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} filters.Snapshot
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/filters [delete]
func resetFiltersHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookup(w, r, reg)
		if !ok {
			return
		}
		_ = s.UpdateFilters(func(st *filters.State) error {
			st.Reset()
			return nil
		})
		writeJSON(w, http.StatusOK, s.Filters())
	}
}

// viewHandler godoc
// @Summary Eventos visibles
// @Description Aplica los filtros al set de la ciudad. total_count no depende del tope; events trae como máximo cap elementos.
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param cap query int false "Tope de marcadores; por defecto el del servidor, 0 = sin tope"
// @Success 200 {object} View
// @Failure 400 {string} string "no city selected / invalid cap"
// @Failure 404 {string} string "session not found"
// @Failure 502 {string} string "backend unavailable and nothing cached"
// @Router /sessions/{sessionID}/events [get]
func viewHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookup(w, r, reg)
		if !ok {
			return
		}

		limit := -1
		if v := strings.TrimSpace(r.URL.Query().Get("cap")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "cap must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		if err := s.Ensure(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		writeView(w, s, limit)
	}
}

// refreshHandler godoc
// @Summary Refrescar ciudad
// @Description Fuerza la recarga desde el backend. Si falla y hay copia en caché, responde con stale=true.
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} View
// @Failure 400 {string} string "no city selected"
// @Failure 404 {string} string "session not found"
// @Failure 502 {string} string "backend unavailable and nothing cached"
// @Router /sessions/{sessionID}/refresh [post]
func refreshHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookup(w, r, reg)
		if !ok {
			return
		}
		if err := s.Refresh(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		writeView(w, s, -1)
	}
}

func lookup(w http.ResponseWriter, r *http.Request, reg *Registry) (*Session, bool) {
	s, ok := reg.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// dateSetter valida el filtro de fecha antes de tocar el estado.
func dateSetter(req setFiltersRequest, loc *time.Location) (func(*filters.State) error, error) {
	mode := strings.ToLower(strings.TrimSpace(req.DateMode))
	switch mode {
	case "", string(filters.DateModeNone):
		return func(st *filters.State) error { st.ClearDateFilter(); return nil }, nil

	case string(filters.DateModeRange):
		start, err := parseDate(req.Start, loc)
		if err != nil {
			return nil, err
		}
		var end *time.Time
		if strings.TrimSpace(req.End) != "" {
			e, err := parseDate(req.End, loc)
			if err != nil {
				return nil, err
			}
			end = &e
		}
		if end != nil && filters.EndOfDay(*end).Before(filters.StartOfDay(start)) {
			return nil, filters.ErrInvalidRange
		}
		return func(st *filters.State) error { return st.SetExplicitRange(start, end) }, nil

	default:
		if !filters.QuickFilter(mode).Valid() {
			return nil, filters.ErrInvalidFilterName
		}
		return func(st *filters.State) error { return st.SetQuickFilter(mode) }, nil
	}
}

func parseDate(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, filters.ErrInvalidRange
	}
	if t, err := time.ParseInLocation("2006-01-02", v, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, filters.ErrInvalidRange
	}
	return t.In(loc), nil
}

func writeView(w http.ResponseWriter, s *Session, limit int) {
	v, err := s.ViewWithCap(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if v.Events == nil {
		v.Events = []Row{}
	}
	writeJSON(w, http.StatusOK, v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, filters.ErrInvalidFilterName),
		errors.Is(err, filters.ErrInvalidRange),
		errors.Is(err, events.ErrInvalidInput),
		errors.Is(err, ErrNoCity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrSuperseded):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, events.ErrNetwork):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "timeout", http.StatusGatewayTimeout)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
