package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SteampunkGill/readmemory/internal/errors"
	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
)

func (s *Server) handleDueWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID := userIDFromContext(r.Context())

	q := r.URL.Query()
	filter := models.DueWordFilter{
		Language:   q.Get("language"),
		Difficulty: q.Get("difficulty"),
		FreshOnly:  q.Get("fresh_only") == "true",
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("limit", "must be an integer"))
			return
		}
		filter.Limit = limit
	}

	log.Debug("due-words request: user_id=%d", userID)

	result, err := s.ReviewService.GetDueWords(r.Context(), userID, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "due words retrieved", result)
}

func (s *Server) handleSubmitSession(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var sub models.SessionSubmission
	if err := decodeJSON(r, &sub); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body: "+err.Error()))
		return
	}

	result, err := s.ReviewService.SubmitSession(r.Context(), userID, sub)
	if err != nil {
		handleError(w, r, err)
		return
	}

	message := "session recorded"
	if result.Duplicate {
		message = "session already recorded"
	}
	respondJSON(w, r, http.StatusOK, message, result)
}

type skipRequest struct {
	SkipDays   int    `json:"skip_days"`
	SkipReason string `json:"skip_reason"`
}

func (s *Server) handleSkipWord(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	itemID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Body is optional; an empty one means skip a single day.
	req := skipRequest{}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid request body: "+err.Error()))
			return
		}
	}

	item, err := s.ReviewService.SkipWord(r.Context(), userID, itemID, req.SkipDays)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, "word skipped", map[string]any{
		"word":        item,
		"skip_reason": req.SkipReason,
	})
}

type resetRequest struct {
	ResetMastery     *bool `json:"reset_mastery"`
	ResetReviewCount *bool `json:"reset_review_count"`
}

func (s *Server) handleResetWord(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	itemID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := resetRequest{}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid request body: "+err.Error()))
			return
		}
	}
	resetMastery := true
	if req.ResetMastery != nil {
		resetMastery = *req.ResetMastery
	}
	resetReviewCount := false
	if req.ResetReviewCount != nil {
		resetReviewCount = *req.ResetReviewCount
	}

	item, err := s.ReviewService.ResetWord(r.Context(), userID, itemID, resetMastery, resetReviewCount)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "word reset", item)
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid id: " + raw)
	}
	return id, nil
}
