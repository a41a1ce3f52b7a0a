package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DrHac-GH/firstrade-tax-app/src/config"
	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/parsers"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: service,
	}
}

// HandleUpload accepts one CSV export in the multipart "file" field,
// classifies it and loads it into the session. Every classification
// failure maps to its own message; none are fatal, the client may retry
// with another file.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "session required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "sessionID", sess.ID, "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "sessionID", sess.ID, "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && !isAllowedUploadType(ct) {
		logger.L.Warn("Rejecting upload with non-CSV content type", "sessionID", sess.ID, "contentType", ct)
		utils.SendJSONError(w, "Only CSV or plain-text files are accepted", http.StatusBadRequest)
		return
	}

	logger.L.Info("Processing upload request", "sessionID", sess.ID, "filename", fileHeader.Filename)
	result, err := h.uploadService.ProcessUpload(sess, file)
	if err != nil {
		switch {
		case errors.Is(err, parsers.ErrEmptyFile):
			utils.SendJSONError(w, "The file is empty.", http.StatusBadRequest)
		case errors.Is(err, parsers.ErrHeaderNotFound):
			utils.SendJSONError(w, "Could not find a header row starting with 'Symbol'.", http.StatusBadRequest)
		case errors.Is(err, parsers.ErrUnknownSchema):
			utils.SendJSONError(w, "Unrecognized file format: expected a gain/loss or account history export.", http.StatusBadRequest)
		case errors.Is(err, parsers.ErrNoDataRows):
			utils.SendJSONError(w, "No usable transaction rows found in the file.", http.StatusBadRequest)
		case errors.Is(err, parsers.ErrParsingFailed):
			utils.SendJSONError(w, fmt.Sprintf("Error parsing CSV file: %v", err), http.StatusBadRequest)
		default:
			logger.L.Error("Internal error processing upload", "sessionID", sess.ID, "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for upload result", "sessionID", sess.ID, "error", err)
	}
}

func isAllowedUploadType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "csv") ||
		strings.HasPrefix(ct, "text/plain") ||
		strings.HasPrefix(ct, "application/octet-stream")
}
