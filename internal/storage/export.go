package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/progression"
)

// ExportAll serialises the namespaced state as one portable document.
func (s *Store) ExportAll(ctx context.Context) ([]byte, error) {
	snap := s.Load(ctx)
	doc := models.ExportDocument{
		UserData:   &snap.Profile,
		Progress:   &snap.History,
		ExportDate: models.Timestamp(s.now()),
		Version:    models.ExportFormatVersion,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	s.logFor(ctx).Info("exported %d exercises, %d words", len(snap.History.Exercises), len(snap.Profile.WordsLearned))
	return data, nil
}

// ImportAll replaces the namespaced state with an exported document. A
// malformed document is rejected before anything is written.
func (s *Store) ImportAll(ctx context.Context, data []byte) bool {
	log := s.logFor(ctx)

	doc, err := DecodeExport(data)
	if err != nil {
		log.Warn("import rejected: %v", err)
		return false
	}

	profile, err := json.Marshal(doc.UserData)
	if err != nil {
		log.Error("import: encode profile: %v", err)
		return false
	}
	history, err := json.Marshal(doc.Progress)
	if err != nil {
		log.Error("import: encode history: %v", err)
		return false
	}

	err = s.repo.Replace(ctx, s.prefix, map[string]string{
		s.key(KeyUserData): string(profile),
		s.key(KeyProgress): string(history),
	})
	if err != nil {
		log.Error("import: write failed: %v", err)
		return false
	}
	log.Info("imported document exported at %s", doc.ExportDate.Format("2006-01-02 15:04:05"))
	return true
}

// DecodeExport parses and validates an export document.
func DecodeExport(data []byte) (*models.ExportDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc models.ExportDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode: trailing data after document")
	}
	if doc.Version != models.ExportFormatVersion {
		return nil, fmt.Errorf("unsupported export version %q", doc.Version)
	}
	if doc.UserData == nil {
		return nil, fmt.Errorf("userData is missing")
	}
	if doc.Progress == nil {
		doc.Progress = &models.ExerciseHistory{}
	}
	if doc.Progress.Exercises == nil {
		doc.Progress.Exercises = []models.ExerciseRecord{}
	}
	doc.UserData.Normalize()

	if err := ValidateProfile(doc.UserData); err != nil {
		return nil, err
	}
	if err := ValidateHistory(doc.Progress); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ValidateProfile checks the invariants every stored profile must hold.
func ValidateProfile(p *models.UserProfile) error {
	switch {
	case p.XP < 0:
		return fmt.Errorf("xp must not be negative")
	case p.XP > progression.MaxXP:
		return fmt.Errorf("xp %d exceeds the maximum of %d", p.XP, progression.MaxXP)
	case p.Level != progression.LevelFromXP(p.XP):
		return fmt.Errorf("level %d does not match xp %d", p.Level, p.XP)
	case p.Streak < 0 || p.LongestStreak < p.Streak:
		return fmt.Errorf("streak %d / longest %d is inconsistent", p.Streak, p.LongestStreak)
	case p.ExercisesCompleted < 0 || p.StudyTimeSeconds < 0:
		return fmt.Errorf("counters must not be negative")
	}

	for id, w := range p.WordsLearned {
		if w.ID != id {
			return fmt.Errorf("word %q is stored under key %q", w.ID, id)
		}
		if w.MasteryLevel < 0 || w.MasteryLevel > models.MaxMastery {
			return fmt.Errorf("word %q has mastery %d", id, w.MasteryLevel)
		}
		if w.TimesReviewed < 0 || w.CorrectCount < 0 || w.IncorrectCount < 0 {
			return fmt.Errorf("word %q has negative counters", id)
		}
	}

	seen := make(map[string]bool, len(p.Achievements))
	for _, a := range p.Achievements {
		if seen[a.ID] {
			return fmt.Errorf("achievement %q earned twice", a.ID)
		}
		seen[a.ID] = true
	}
	seen = make(map[string]bool, len(p.AchievedMilestones))
	for _, id := range p.AchievedMilestones {
		if seen[id] {
			return fmt.Errorf("milestone %q achieved twice", id)
		}
		seen[id] = true
	}

	if acc := p.Statistics.AverageAccuracy; acc < 0 || acc > 1 {
		return fmt.Errorf("average accuracy %v out of range", acc)
	}
	return nil
}

func ValidateHistory(h *models.ExerciseHistory) error {
	for i, e := range h.Exercises {
		if e.Score < 0 || e.Score > 100 {
			return fmt.Errorf("exercise %d has score %d", i, e.Score)
		}
		if e.TimeSpentSeconds < 0 {
			return fmt.Errorf("exercise %d has negative duration", i)
		}
	}
	return nil
}
