package api

import (
	"net/http"

	"github.com/SteampunkGill/readmemory/internal/errors"
	"github.com/SteampunkGill/readmemory/internal/models"
)

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	plan, err := s.SettingsService.GetPlan(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "plan retrieved", plan)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var patch models.ReviewSettingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body: "+err.Error()))
		return
	}

	plan, err := s.SettingsService.UpdatePlan(r.Context(), userID, patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "plan updated", plan)
}
