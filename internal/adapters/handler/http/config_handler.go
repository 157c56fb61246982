package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type ConfigHandler struct {
	service ports.ConfigService
	logger  *slog.Logger
}

func NewConfigHandler(service ports.ConfigService, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{
		service: service,
		logger:  logger,
	}
}

type configResponse struct {
	Config  domain.VotingConfig  `json:"config"`
	Entries []domain.ConfigEntry `json:"entries"`
}

// updateConfigRequest accepts either a changes map or a single key/value.
type updateConfigRequest struct {
	Changes map[string]string `json:"changes"`
	Key     string            `json:"key"`
	Value   *string           `json:"value"`
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)
}

func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	changes := req.Changes
	if req.Key != "" {
		if req.Value == nil {
			respondError(w, r, h.logger, domain.ErrMissingField)
			return
		}
		changes = map[string]string{req.Key: *req.Value}
	}

	if _, err := h.service.Update(r.Context(), changes); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respond(w, r)
}

func (h *ConfigHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Reset(r.Context()); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respond(w, r)
}

func (h *ConfigHandler) respond(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Get(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	entries, err := h.service.Entries(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{Config: cfg, Entries: entries})
}
