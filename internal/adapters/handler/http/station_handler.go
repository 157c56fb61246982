package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type StationHandler struct {
	service ports.StationService
	logger  *slog.Logger
}

func NewStationHandler(service ports.StationService, logger *slog.Logger) *StationHandler {
	return &StationHandler{
		service: service,
		logger:  logger,
	}
}

type stationListResponse struct {
	Total    int                      `json:"total"`
	Stations []*domain.PollingStation `json:"stations"`
}

func (h *StationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ports.CreateStationInput
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	station, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, station)
}

// List returns the stations of ?day=YYYY-MM-DD, today by default.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		stations []*domain.PollingStation
		err      error
	)
	if raw := r.URL.Query().Get("day"); raw != "" {
		day, parseErr := domain.ParseDay(raw)
		if parseErr != nil {
			respondError(w, r, h.logger, parseErr)
			return
		}
		stations, err = h.service.ListForDay(r.Context(), day)
	} else {
		stations, err = h.service.ListToday(r.Context())
	}
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stationListResponse{Total: len(stations), Stations: stations})
}

func (h *StationHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid station id")
		return
	}
	h.toggle(w, r, id)
}

func (h *StationHandler) OpenAll(w http.ResponseWriter, r *http.Request) {
	stations, err := h.service.OpenAll(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stationListResponse{Total: len(stations), Stations: stations})
}

func (h *StationHandler) CloseAll(w http.ResponseWriter, r *http.Request) {
	stations, err := h.service.CloseAll(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stationListResponse{Total: len(stations), Stations: stations})
}

func (h *StationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		respondError(w, r, h.logger, domain.ErrConfirmationRequired)
		return
	}

	deleted, err := h.service.DeleteAll(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// Current returns the station the president's session is scoped to.
func (h *StationHandler) Current(w http.ResponseWriter, r *http.Request) {
	id, err := scopedStation(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	station, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

func (h *StationHandler) ToggleCurrent(w http.ResponseWriter, r *http.Request) {
	id, err := scopedStation(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.toggle(w, r, id)
}

func (h *StationHandler) toggle(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	station, err := h.service.ToggleOpen(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

// scopedStation returns the station bound to the caller's token.
func scopedStation(r *http.Request) (uuid.UUID, error) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok || principal.StationID == nil {
		return uuid.Nil, domain.ErrStationScopeViolation
	}
	return *principal.StationID, nil
}
