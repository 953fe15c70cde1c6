package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"scribe-api/internal/domain/dto"
	"scribe-api/internal/infra/logger"
	"scribe-api/internal/infra/provider"
)

type ProfileHandlers struct {
	Logger   *logger.Logger
	Identity provider.IIdentityProvider
}

func NewProfileHandlers(logger *logger.Logger, identity provider.IIdentityProvider) *ProfileHandlers {
	return &ProfileHandlers{Logger: logger, Identity: identity}
}

// UpdateProfile renames a user through the identity provider's management
// API.
func (ph *ProfileHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	defer r.Body.Close()

	data, err := ph.Identity.UpdateProfile(r.Context(), input.UserID, input.Name)
	if err != nil {
		ph.Logger.Error(fmt.Sprintf("Error updating profile: %v", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}
