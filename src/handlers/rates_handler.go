package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

type RatesHandler struct {
	uploadService services.UploadService
}

func NewRatesHandler(service services.UploadService) *RatesHandler {
	return &RatesHandler{
		uploadService: service,
	}
}

// HandleFetchRates pulls a fresh USD/JPY daily rate series spanning the
// session's transactions and recalculates every derived collection.
func (h *RatesHandler) HandleFetchRates(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "session required", http.StatusUnauthorized)
		return
	}

	result, err := h.uploadService.RefreshRates(r.Context(), sess)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFetchInProgress):
			utils.SendJSONError(w, "A rate fetch is already in progress for this session.", http.StatusConflict)
		case errors.Is(err, services.ErrNoDateRange):
			utils.SendJSONError(w, "Load a transaction file first so the fetch range can be determined.", http.StatusBadRequest)
		case errors.Is(err, services.ErrRateFetchFailed):
			logger.L.Error("Rate provider request failed", "sessionID", sess.ID, "error", err)
			utils.SendJSONError(w, "Failed to fetch exchange rates from the provider. Try again later.", http.StatusBadGateway)
		default:
			logger.L.Error("Internal error fetching rates", "sessionID", sess.ID, "error", err)
			utils.SendJSONError(w, "An internal error occurred while fetching rates.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding rate fetch result", "sessionID", sess.ID, "error", err)
	}
}
