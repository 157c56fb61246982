package http

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/electoral/internal/adapters/csvio"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type VoterHandler struct {
	service ports.VoterService
	logger  *slog.Logger
}

func NewVoterHandler(service ports.VoterService, logger *slog.Logger) *VoterHandler {
	return &VoterHandler{
		service: service,
		logger:  logger,
	}
}

type importVotersRequest struct {
	Records []domain.VoterRecord `json:"records"`
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

type voterListResponse struct {
	Total  int                  `json:"total"`
	Voters []domain.VoterStatus `json:"voters"`
}

func (h *VoterHandler) List(w http.ResponseWriter, r *http.Request) {
	voters, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, voterListResponse{Total: len(voters), Voters: voters})
}

func (h *VoterHandler) Export(w http.ResponseWriter, r *http.Request) {
	voters, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="voters.csv"`)
	if err := csvio.WriteVoters(w, voters); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write voters export", "error", err)
	}
}

// Import accepts a JSON body with records, a raw CSV body or a multipart
// form carrying the CSV in its "file" field.
func (h *VoterHandler) Import(w http.ResponseWriter, r *http.Request) {
	records, err := h.importRecords(w, r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	result, err := h.service.BulkUpsert(r.Context(), records)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *VoterHandler) importRecords(w http.ResponseWriter, r *http.Request) ([]domain.VoterRecord, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch {
	case mediaType == "application/json":
		var req importVotersRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return nil, err
		}
		return req.Records, nil
	case mediaType == "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidImportFile, err)
		}
		defer file.Close()
		return csvio.ReadVoters(file)
	default:
		body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer body.Close()
		return csvio.ReadVoters(body)
	}
}

func (h *VoterHandler) Get(w http.ResponseWriter, r *http.Request) {
	voter, err := h.service.FindByNationalID(r.Context(), chi.URLParam(r, "nationalID"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, voter)
}

func (h *VoterHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	var req setEnabledRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if req.Enabled == nil {
		respondError(w, r, h.logger, domain.ErrMissingField)
		return
	}

	nationalID := chi.URLParam(r, "nationalID")
	if err := h.service.SetEnabled(r.Context(), nationalID, *req.Enabled); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"national_id": nationalID, "enabled": *req.Enabled})
}

func (h *VoterHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	nationalID := chi.URLParam(r, "nationalID")
	enabled, err := h.service.Toggle(r.Context(), nationalID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"national_id": nationalID, "enabled": enabled})
}

func (h *VoterHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		respondError(w, r, h.logger, domain.ErrConfirmationRequired)
		return
	}

	deleted, err := h.service.ClearAll(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func confirmed(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("confirm"), "true")
}
