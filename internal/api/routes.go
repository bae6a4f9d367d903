package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1/review", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/due-words", s.handleDueWords)
		r.Post("/submit", s.handleSubmitSession)
		r.Post("/skip/{id}", s.handleSkipWord)
		r.Post("/reset/{id}", s.handleResetWord)

		r.Get("/progress", s.handleProgress)
		r.Get("/stats", s.handleStats)
		r.Get("/calendar", s.handleCalendar)

		r.Get("/history", s.handleHistory)
		r.Delete("/history", s.handleClearHistory)
		r.Delete("/history/{id}", s.handleDeleteHistory)

		r.Get("/plan", s.handleGetPlan)
		r.Put("/plan", s.handleUpdatePlan)
	})

	return r
}
