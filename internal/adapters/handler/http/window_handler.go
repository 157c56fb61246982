package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type WindowHandler struct {
	window ports.WindowService
	logger *slog.Logger
}

func NewWindowHandler(window ports.WindowService, logger *slog.Logger) *WindowHandler {
	return &WindowHandler{
		window: window,
		logger: logger,
	}
}

type windowResponse struct {
	domain.WindowStatus
	Config domain.VotingConfig `json:"config"`
}

// Status is public so that every client shows the same evaluation the server
// enforces.
func (h *WindowHandler) Status(w http.ResponseWriter, r *http.Request) {
	cfg, status, err := h.window.Snapshot(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, windowResponse{WindowStatus: status, Config: cfg})
}
