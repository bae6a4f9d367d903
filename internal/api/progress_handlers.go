package api

import (
	"net/http"
	"strconv"

	"github.com/SteampunkGill/readmemory/internal/errors"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	progress, err := s.ProgressService.GetProgress(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "progress retrieved", progress)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	stats, err := s.ProgressService.GetStats(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "stats retrieved", stats)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	// Defaults to the current month.
	now := s.now()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if raw := q.Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("year", "must be an integer"))
			return
		}
		year = v
	}
	if raw := q.Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("month", "must be an integer"))
			return
		}
		month = v
	}

	days, err := s.ProgressService.GetCalendar(r.Context(), userID, year, month)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, "calendar retrieved", map[string]any{
		"year":  year,
		"month": month,
		"days":  days,
	})
}
