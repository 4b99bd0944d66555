package api

import (
	"net/http"

	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/models"
)

func (s *Server) handleRecordExercise(w http.ResponseWriter, r *http.Request) {
	var input models.ExerciseInput
	if err := decodeJSON(w, r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	out, err := s.ExerciseService.RecordExercise(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if out.XP.LeveledUp {
		logger.FromContext(r.Context()).Info("level up: %d -> %d", out.XP.OldLevel, out.XP.NewLevel)
	}
	writeJSON(w, r, http.StatusCreated, out)
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}

	words, err := s.ReviewService.DueWords(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, words)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	size, err := queryInt(r, "size")
	if err != nil {
		handleError(w, r, err)
		return
	}

	words, err := s.ReviewService.StudySession(r.Context(), size)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, words)
}
