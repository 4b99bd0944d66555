package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/vytor/palabras/internal/errors"
	"github.com/vytor/palabras/internal/flashcard"
	"github.com/vytor/palabras/internal/gamification"
	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/progression"
	"github.com/vytor/palabras/internal/storage"
	"github.com/vytor/palabras/internal/vocabulary"
)

// ExerciseService records finished exercises. It is the single entry point
// through which an exercise changes the learner's progress.
type ExerciseService interface {
	RecordExercise(ctx context.Context, input models.ExerciseInput) (*models.ExerciseOutcome, error)
}

type exerciseService struct {
	store ProgressStore
	vocab vocabulary.Source
	opts  options
}

// NewExerciseService creates a new ExerciseService. vocab may be nil, in
// which case new words are tracked under the unknown category.
func NewExerciseService(store ProgressStore, vocab vocabulary.Source, opts ...Option) ExerciseService {
	return &exerciseService{
		store: store,
		vocab: vocab,
		opts:  buildOptions(opts),
	}
}

func validateExercise(input *models.ExerciseInput) error {
	input.Type = models.ExerciseType(strings.TrimSpace(string(input.Type)))
	if input.Type == "" {
		return errors.NewValidationError("type", "cannot be empty")
	}
	if input.Score < 0 || input.Score > 100 {
		return errors.NewValidationError("score", "must be between 0 and 100")
	}
	if input.TimeSpentSeconds < 0 {
		return errors.NewValidationError("timeSpentSeconds", "cannot be negative")
	}

	ids := make([]string, 0, len(input.WordIDs))
	seen := make(map[string]bool, len(input.WordIDs))
	for _, id := range input.WordIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	input.WordIDs = ids
	return nil
}

func (s *exerciseService) RecordExercise(ctx context.Context, input models.ExerciseInput) (*models.ExerciseOutcome, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording exercise: type=%s, score=%d, words=%d", input.Type, input.Score, len(input.WordIDs))

	if err := validateExercise(&input); err != nil {
		return nil, err
	}
	if !progression.KnownExerciseType(input.Type) {
		log.Warn("unknown exercise type %q, using lowest XP tier", input.Type)
	}

	now := s.opts.today()
	snap := s.store.Load(ctx)
	p := &snap.Profile
	startLevel := p.Level

	record := models.ExerciseRecord{
		ID:               s.opts.newID(),
		Type:             input.Type,
		Score:            input.Score,
		TimeSpentSeconds: input.TimeSpentSeconds,
		WordIDs:          input.WordIDs,
		CompletedAt:      models.Timestamp(now),
		Date:             models.DateOf(now),
	}
	snap.History.Exercises = append(snap.History.Exercises, record)
	s.updateStatistics(p, &snap.History, record)
	s.updateWords(p, input, now)

	exerciseXP := progression.AddXP(p, progression.ExerciseXP(input.Type, input.Score), "exercise:"+string(input.Type))
	achievements := gamification.CheckAchievements(p, &snap.History, &record, now)

	streak := progression.UpdateStreak(p, now)
	if streak.Bonus > 0 {
		progression.AddXP(p, streak.Bonus, "streak")
		log.Info("streak reached %d days, bonus %d XP", streak.Streak, streak.Bonus)
	}

	milestones := gamification.CheckMilestones(p, now)

	if err := s.store.Commit(ctx, snap); err != nil {
		if stderrors.Is(err, storage.ErrConflict) {
			return nil, errors.NewConflictError(err)
		}
		log.Error("failed to save exercise: %v", err)
		return nil, errors.NewInternalError(err)
	}

	summary := models.XPSummary{
		ExerciseXP:    exerciseXP.NewXP - exerciseXP.OldXP,
		AchievementXP: gamification.TotalXP(achievements),
		StreakBonus:   streak.Bonus,
		MilestoneXP:   gamification.MilestoneXP(milestones),
		OldLevel:      startLevel,
		NewLevel:      p.Level,
		LeveledUp:     p.Level > startLevel,
		TotalXP:       p.XP,
	}
	summary.Earned = summary.ExerciseXP + summary.AchievementXP + summary.StreakBonus + summary.MilestoneXP

	log.Info("exercise recorded: id=%s, type=%s, score=%d, xp=+%d, level=%d, achievements=%d, milestones=%d",
		record.ID, record.Type, record.Score, summary.Earned, p.Level, len(achievements), len(milestones))

	return &models.ExerciseOutcome{
		Exercise:     record,
		XP:           summary,
		Achievements: achievements,
		Milestones:   milestones,
		Streak:       streak,
		Profile:      p.Clone(),
	}, nil
}

// updateStatistics folds record into the profile counters. The accuracy sum
// is rebuilt from history when the counters have drifted from it, as after
// importing data written before the sum existed.
func (s *exerciseService) updateStatistics(p *models.UserProfile, h *models.ExerciseHistory, record models.ExerciseRecord) {
	stats := &p.Statistics

	p.ExercisesCompleted++
	p.StudyTimeSeconds += record.TimeSpentSeconds
	stats.TotalExercises++
	stats.TotalStudyTime += record.TimeSpentSeconds
	stats.DailyActivity[record.Date]++
	stats.ExercisesByType[string(record.Type)]++

	if stats.TotalExercises == len(h.Exercises) {
		stats.AccuracySum += record.Score
	} else {
		stats.TotalExercises = len(h.Exercises)
		stats.AccuracySum = 0
		for _, e := range h.Exercises {
			stats.AccuracySum += e.Score
		}
	}
	stats.AverageAccuracy = float64(stats.AccuracySum) / float64(100*stats.TotalExercises)
}

func (s *exerciseService) updateWords(p *models.UserProfile, input models.ExerciseInput, now time.Time) {
	for _, id := range input.WordIDs {
		wp, ok := p.WordsLearned[id]
		if !ok {
			wp = flashcard.NewWordProgress(vocabulary.Lookup(s.vocab, id), now)
		}

		correct := input.Score >= s.opts.correctThreshold
		if r, ok := input.Results[id]; ok {
			correct = r
		}
		p.WordsLearned[id] = flashcard.ApplyAnswer(wp, correct, now)
	}
	p.Statistics.TotalWordsLearned = len(p.WordsLearned)
}
