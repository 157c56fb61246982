package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/electoral/internal/adapters/csvio"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type ReportHandler struct {
	service ports.ReportService
	logger  *slog.Logger
}

func NewReportHandler(service ports.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// Get serves /reports/{type} as JSON, or as CSV with ?format=csv.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	reportType, err := domain.ParseReportType(chi.URLParam(r, "type"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	data, writeCSV, err := h.build(r, reportType)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if format != "csv" {
		writeJSON(w, http.StatusOK, data)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%s.csv"`, reportType))
	if err := writeCSV(w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write report", "type", reportType, "error", err)
	}
}

func (h *ReportHandler) build(r *http.Request, reportType domain.ReportType) (any, func(io.Writer) error, error) {
	ctx := r.Context()

	switch reportType {
	case domain.ReportStation:
		tallies, err := h.service.ByStation(ctx)
		return tallies, func(w io.Writer) error { return csvio.WriteStations(w, tallies) }, err
	case domain.ReportLocation:
		tallies, err := h.service.ByLocation(ctx)
		return tallies, func(w io.Writer) error { return csvio.WriteLocations(w, tallies) }, err
	case domain.ReportSchedule:
		tallies, err := h.service.BySchedule(ctx)
		return tallies, func(w io.Writer) error { return csvio.WriteSchedule(w, tallies) }, err
	case domain.ReportCategory:
		tallies, err := h.service.ByCategory(ctx)
		return tallies, func(w io.Writer) error { return csvio.WriteCategories(w, tallies) }, err
	default:
		report, err := h.service.General(ctx)
		return report, func(w io.Writer) error { return csvio.WriteGeneral(w, report) }, err
	}
}
