package api

import (
	"net/http"

	"github.com/vytor/palabras/internal/models"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.ProfileService.GetProfile(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := decodeJSON(w, r, &settings); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.ProfileService.UpdateSettings(r.Context(), settings)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	daily, err := s.ProfileService.DailyProgress(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, daily)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	lp, err := s.ProfileService.LevelProgress(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, lp)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := s.ProfileService.Achievements(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	list, err := s.ProfileService.Milestones(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleUnlocks(w http.ResponseWriter, r *http.Request) {
	unlocks, err := s.ProfileService.Unlocks(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]string{"unlocks": unlocks})
}
