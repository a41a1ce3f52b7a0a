package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

type ExportHandler struct {
	uploadService services.UploadService
}

func NewExportHandler(service services.UploadService) *ExportHandler {
	return &ExportHandler{
		uploadService: service,
	}
}

// HandleExport streams one category of the year-filtered data as a
// BOM-prefixed CSV download.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "session required", http.StatusUnauthorized)
		return
	}

	year, err := yearParam(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	category := chi.URLParam(r, "category")
	summary := h.uploadService.GetSummary(sess, year)

	data, err := services.ExportCSV(summary, category)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCategory) {
			utils.SendJSONError(w, fmt.Sprintf("Unknown export category %q", category), http.StatusBadRequest)
			return
		}
		logger.L.Error("Export failed", "sessionID", sess.ID, "category", category, "error", err)
		utils.SendJSONError(w, "Failed to build the export.", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s-%d.csv", category, summary.Year)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		logger.L.Error("Error writing export response", "sessionID", sess.ID, "error", err)
	}
}

// HandleGetReport serves the printable Markdown report document.
func (h *ExportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "session required", http.StatusUnauthorized)
		return
	}

	year, err := yearParam(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary := h.uploadService.GetSummary(sess, year)
	report := services.BuildReport(summary)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := w.Write([]byte(report)); err != nil {
		logger.L.Error("Error writing report response", "sessionID", sess.ID, "error", err)
	}
}
