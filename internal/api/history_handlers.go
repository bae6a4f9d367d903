package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SteampunkGill/readmemory/internal/errors"
	"github.com/SteampunkGill/readmemory/internal/models"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	filter := models.SessionFilter{UserID: userID}
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("limit", "must be an integer"))
			return
		}
		filter.Limit = v
	}
	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("offset", "must be an integer"))
			return
		}
		filter.Offset = v
	}
	if raw := q.Get("from"); raw != "" {
		t, err := parseDateParam(raw, false)
		if err != nil {
			handleError(w, r, errors.NewValidationError("from", "must be RFC3339 or YYYY-MM-DD"))
			return
		}
		filter.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseDateParam(raw, true)
		if err != nil {
			handleError(w, r, errors.NewValidationError("to", "must be RFC3339 or YYYY-MM-DD"))
			return
		}
		filter.To = &t
	}

	sessions, total, err := s.ReviewService.ListHistory(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "history retrieved", map[string]any{
		"sessions": sessions,
		"total":    total,
	})
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ReviewService.DeleteHistory(r.Context(), userID, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "session deleted", nil)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	deleted, err := s.ReviewService.ClearHistory(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "history cleared", map[string]any{"deleted": deleted})
}

// parseDateParam accepts RFC3339 timestamps or bare dates. Bare "to" dates
// extend to the end of the day so the range is inclusive.
func parseDateParam(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
