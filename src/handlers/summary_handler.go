package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

type SummaryHandler struct {
	uploadService services.UploadService
}

func NewSummaryHandler(service services.UploadService) *SummaryHandler {
	return &SummaryHandler{
		uploadService: service,
	}
}

// yearParam reads the optional ?year= query parameter. 0 means "latest
// available".
func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 9999 {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

// HandleGetSummary serves the year-filtered report data with ETag support.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Cache-Control", "no-cache, private")
	if etag, etagErr := utils.GenerateETag(summary); etagErr == nil && etag != "" {
		quoted := fmt.Sprintf("%q", etag)
		w.Header().Set("ETag", quoted)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quoted {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.L.Error("Error encoding summary response", "sessionID", sess.ID, "error", err)
	}
}

// HandleGetYears serves the available tax years, newest first.
func (h *SummaryHandler) HandleGetYears(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "session required", http.StatusUnauthorized)
		return
	}

	years := h.uploadService.GetAvailableYears(sess)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]int{"years": years}); err != nil {
		logger.L.Error("Error encoding years response", "sessionID", sess.ID, "error", err)
	}
}
