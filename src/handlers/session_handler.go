package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/security"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

type SessionHandler struct {
	authService *security.AuthService
	store       *services.SessionStore
}

func NewSessionHandler(authService *security.AuthService, store *services.SessionStore) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		store:       store,
	}
}

// HandleCreateSession starts a fresh empty session and returns its token.
func (h *SessionHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Create()
	token, err := h.authService.GenerateToken(sess.ID)
	if err != nil {
		logger.L.Error("Failed to sign session token", "sessionID", sess.ID, "error", err)
		utils.SendJSONError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
