package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/palabras/internal/errors"
	"github.com/vytor/palabras/internal/gamification"
	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/progression"
	"github.com/vytor/palabras/internal/storage"
)

const (
	minDailyGoal = 1
	maxDailyGoal = 500
)

// ProfileService handles profile-related business logic
type ProfileService interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	UpdateSettings(ctx context.Context, settings models.Settings) (*models.Settings, error)
	DailyProgress(ctx context.Context) (*models.DailyProgress, error)
	LevelProgress(ctx context.Context) (*models.LevelProgress, error)
	Achievements(ctx context.Context) ([]models.AchievementStatus, error)
	Milestones(ctx context.Context) ([]models.MilestoneStatus, error)
	Unlocks(ctx context.Context) ([]string, error)
}

type profileService struct {
	store ProgressStore
	opts  options
}

// NewProfileService creates a new ProfileService
func NewProfileService(store ProgressStore, opts ...Option) ProfileService {
	return &profileService{store: store, opts: buildOptions(opts)}
}

func (s *profileService) profile(ctx context.Context) models.UserProfile {
	return s.store.Load(ctx).Profile
}

func (s *profileService) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	logger.FromContext(ctx).Debug("getting profile")
	p := s.profile(ctx)
	return &p, nil
}

// ValidateSettings checks a settings update before it is stored.
func ValidateSettings(settings models.Settings) error {
	if settings.DailyGoal < minDailyGoal || settings.DailyGoal > maxDailyGoal {
		return errors.NewValidationError("dailyGoal", "must be between 1 and 500")
	}
	if !settings.DifficultyPreference.Valid() {
		return errors.NewValidationError("difficultyPreference", "must be one of beginner, intermediate, advanced, mixed")
	}
	return nil
}

// UpdateSettings replaces the learner's settings. Progress is never touched.
func (s *profileService) UpdateSettings(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating settings: daily_goal=%d, difficulty=%s", settings.DailyGoal, settings.DifficultyPreference)

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	snap := s.store.Load(ctx)
	snap.Profile.Settings = settings
	if err := s.store.Commit(ctx, snap); err != nil {
		if stderrors.Is(err, storage.ErrConflict) {
			return nil, errors.NewConflictError(err)
		}
		log.Error("failed to save settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &settings, nil
}

func (s *profileService) DailyProgress(ctx context.Context) (*models.DailyProgress, error) {
	p := s.profile(ctx)
	day := models.DateOf(s.opts.today())
	done := p.Statistics.DailyActivity[day]
	return &models.DailyProgress{
		Date:      day,
		Completed: done,
		Goal:      p.Settings.DailyGoal,
		Met:       p.Settings.DailyGoal > 0 && done >= p.Settings.DailyGoal,
	}, nil
}

func (s *profileService) LevelProgress(ctx context.Context) (*models.LevelProgress, error) {
	lp := progression.Progress(s.profile(ctx).XP)
	return &lp, nil
}

func (s *profileService) Achievements(ctx context.Context) ([]models.AchievementStatus, error) {
	p := s.profile(ctx)
	return gamification.AchievementStatus(&p), nil
}

func (s *profileService) Milestones(ctx context.Context) ([]models.MilestoneStatus, error) {
	p := s.profile(ctx)
	return gamification.MilestoneStatus(&p), nil
}

// Unlocks lists the content unlocked by achieved milestones.
func (s *profileService) Unlocks(ctx context.Context) ([]string, error) {
	p := s.profile(ctx)
	return gamification.Unlocks(&p), nil
}
