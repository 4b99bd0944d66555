package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(timeoutMiddleware(s.readTimeout()))

			r.Get("/profile", s.handleProfile)
			r.Get("/daily", s.handleDaily)
			r.Get("/level", s.handleLevel)
			r.Get("/achievements", s.handleAchievements)
			r.Get("/milestones", s.handleMilestones)
			r.Get("/unlocks", s.handleUnlocks)

			r.Get("/reviews", s.handleReviews)
			r.Get("/session", s.handleSession)

			r.Get("/export", s.handleExport)
			r.Get("/report", s.handleReport)
		})

		// Writes run without a timeout so a 503 never hides a commit.
		r.Group(func(r chi.Router) {
			r.Use(s.rateLimitMiddleware)
			r.Put("/settings", s.handleUpdateSettings)
			r.Post("/exercises", s.handleRecordExercise)
			r.Post("/import", s.handleImport)
			r.Post("/reset", s.handleReset)
		})
	})
	return r
}
