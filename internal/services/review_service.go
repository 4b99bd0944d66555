package services

import (
	"context"

	"github.com/vytor/palabras/internal/errors"
	"github.com/vytor/palabras/internal/flashcard"
	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/vocabulary"
)

// ReviewService picks the words a learner should study next.
type ReviewService interface {
	DueWords(ctx context.Context, limit int) ([]models.WordProgress, error)
	StudySession(ctx context.Context, size int) ([]models.Word, error)
}

type reviewService struct {
	store ProgressStore
	vocab vocabulary.Source
	opts  options
}

// NewReviewService creates a new ReviewService
func NewReviewService(store ProgressStore, vocab vocabulary.Source, opts ...Option) ReviewService {
	return &reviewService{store: store, vocab: vocab, opts: buildOptions(opts)}
}

func (s *reviewService) resolveLimit(field string, limit int) (int, error) {
	switch {
	case limit == 0:
		return s.opts.reviewLimit, nil
	case limit < 0 || limit > maxReviewLimit:
		return 0, errors.NewValidationError(field, "must be between 1 and 500")
	}
	return limit, nil
}

// DueWords returns the words due for review, weakest first. A zero limit
// uses the configured default.
func (s *reviewService) DueWords(ctx context.Context, limit int) ([]models.WordProgress, error) {
	limit, err := s.resolveLimit("limit", limit)
	if err != nil {
		return nil, err
	}

	p := s.store.Load(ctx).Profile
	due := flashcard.WordsForReview(p.WordsLearned, s.opts.now(), limit)
	logger.FromContext(ctx).Debug("%d words due for review (limit %d)", len(due), limit)
	return due, nil
}

// StudySession fills a session with due reviews first and then words the
// learner has not met, filtered by their difficulty preference.
func (s *reviewService) StudySession(ctx context.Context, size int) ([]models.Word, error) {
	size, err := s.resolveLimit("size", size)
	if err != nil {
		return nil, err
	}

	p := s.store.Load(ctx).Profile
	due := flashcard.WordsForReview(p.WordsLearned, s.opts.now(), size)
	unseen := vocabulary.Unseen(s.vocab, p.WordsLearned, p.Settings.DifficultyPreference)

	ids := flashcard.BlendSession(due, unseen, size)
	words := make([]models.Word, 0, len(ids))
	for _, id := range ids {
		words = append(words, vocabulary.Lookup(s.vocab, id))
	}
	return words, nil
}
