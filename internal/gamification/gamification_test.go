package gamification_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/palabras/internal/gamification"
	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/progression"
)

var now = time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func achievementIDs(a []models.EarnedAchievement) []string {
	return ids(a, func(e models.EarnedAchievement) string { return e.ID })
}

func milestoneIDs(m []models.Milestone) []string {
	return ids(m, func(m models.Milestone) string { return m.ID })
}

func withWords(p *models.UserProfile, n, mastery int) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("w%03d", i)
		p.WordsLearned[id] = models.WordProgress{ID: id, MasteryLevel: mastery}
	}
}

func TestFacts(t *testing.T) {
	p := models.NewUserProfile(now)
	withWords(&p, 3, 5)
	p.WordsLearned["extra"] = models.WordProgress{ID: "extra", MasteryLevel: 2}
	p.ExercisesCompleted = 4
	p.StudyTimeSeconds = 125
	p.Statistics.AverageAccuracy = 0.876
	p.Statistics.ExercisesByType = map[string]int{"typing": 3, "grammar": 1}
	p.Statistics.DailyActivity = map[string]int{"2024-05-31": 1, "2024-06-01": 3}
	h := models.ExerciseHistory{Exercises: []models.ExerciseRecord{{Score: 100}, {Score: 99}, {Score: 100}}}

	f := gamification.NewFacts(&p, &h, nil)

	assert.Equal(t, 4, f.Value(gamification.CounterWordsLearned))
	assert.Equal(t, 3, f.Value(gamification.CounterMasteredWords))
	assert.Equal(t, 4, f.Value(gamification.CounterExercises))
	assert.Equal(t, 87, f.Value(gamification.CounterAccuracyPercent))
	assert.Equal(t, 2, f.Value(gamification.CounterStudyMinutes))
	assert.Equal(t, 2, f.Value(gamification.CounterPerfectScores))
	assert.Equal(t, 2, f.Value(gamification.CounterActiveDays))
	assert.Equal(t, 3, f.Value(gamification.TypeCounter(models.ExerciseTyping)))
	assert.Equal(t, 0, f.Value(gamification.TypeCounter(models.ExerciseWriting)))
	assert.Equal(t, 0, f.Value("no-such-counter"))

	_, ok := f.Last()
	assert.False(t, ok)
}

func TestFacts_AccuracyPercentTruncates(t *testing.T) {
	tests := []struct {
		acc  float64
		want int
	}{
		{0, 0},
		{0.57, 57},
		{0.895, 89},
		{0.8999, 89},
		{0.9, 90},
		{1, 100},
	}
	for _, tt := range tests {
		p := models.NewUserProfile(now)
		p.Statistics.AverageAccuracy = tt.acc
		f := gamification.NewFacts(&p, nil, nil)
		assert.Equal(t, tt.want, f.Value(gamification.CounterAccuracyPercent), "accuracy %v", tt.acc)
	}
}

func TestSharpMind_NotEarnedBelowNinety(t *testing.T) {
	p := models.NewUserProfile(now)
	p.ExercisesCompleted = 20
	p.Statistics.TotalExercises = 20
	p.Statistics.AccuracySum = 1790
	p.Statistics.AverageAccuracy = 0.895

	earned := gamification.CheckAchievements(&p, nil, nil, now)
	assert.NotContains(t, achievementIDs(earned), "sharp_mind")

	p.Statistics.AccuracySum = 1800
	p.Statistics.AverageAccuracy = 0.9
	earned = gamification.CheckAchievements(&p, nil, nil, now)
	assert.Contains(t, achievementIDs(earned), "sharp_mind")
}

func TestFacts_NilProfile(t *testing.T) {
	f := gamification.NewFacts(nil, nil, nil)
	assert.Equal(t, 0, f.Value(gamification.CounterXP))
}

func TestEvaluate(t *testing.T) {
	p := models.NewUserProfile(now)
	p.Streak = 7
	last := models.ExerciseRecord{Type: models.ExerciseTyping, Score: 96, TimeSpentSeconds: 25}
	f := gamification.NewFacts(&p, nil, &last)

	tests := []struct {
		name string
		cond gamification.Condition
		want bool
	}{
		{"counter reached", gamification.CounterAtLeast{Counter: gamification.CounterStreak, Threshold: 7}, true},
		{"counter short", gamification.CounterAtLeast{Counter: gamification.CounterStreak, Threshold: 8}, false},
		{"last score", gamification.LastScoreAtLeast{Score: 95}, true},
		{"last score too high", gamification.LastScoreAtLeast{Score: 97}, false},
		{"last score wrong type", gamification.LastScoreAtLeast{Score: 50, Type: models.ExerciseGrammar}, false},
		{"last score right type", gamification.LastScoreAtLeast{Score: 50, Type: models.ExerciseTyping}, true},
		{"fast enough", gamification.LastTimeAtMost{Seconds: 25}, true},
		{"too slow", gamification.LastTimeAtMost{Seconds: 24}, false},
		{"all of", gamification.AllOf{gamification.LastScoreAtLeast{Score: 90}, gamification.LastTimeAtMost{Seconds: 30}}, true},
		{"all of with a miss", gamification.AllOf{gamification.LastScoreAtLeast{Score: 90}, gamification.LastTimeAtMost{Seconds: 10}}, false},
		{"empty all of", gamification.AllOf{}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gamification.Evaluate(tt.cond, f))
		})
	}
}

func TestEvaluate_NoLastExercise(t *testing.T) {
	p := models.NewUserProfile(now)
	f := gamification.NewFacts(&p, nil, nil)
	assert.False(t, gamification.Evaluate(gamification.LastScoreAtLeast{Score: 0}, f))
	assert.False(t, gamification.Evaluate(gamification.LastTimeAtMost{Seconds: 1000}, f))
}

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range gamification.Catalog() {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.NotNil(t, a.Condition, a.ID)
		assert.Positive(t, a.XPReward, a.ID)
	}
}

func TestCheckAchievements_FirstExercise(t *testing.T) {
	p := models.NewUserProfile(now)
	p.ExercisesCompleted = 1
	last := models.ExerciseRecord{Type: models.ExerciseFlashcard, Score: 60, TimeSpentSeconds: 90}
	h := models.ExerciseHistory{Exercises: []models.ExerciseRecord{last}}

	earned := gamification.CheckAchievements(&p, &h, &last, now)

	assert.Equal(t, []string{"first_steps"}, achievementIDs(earned))
	assert.Equal(t, 10, p.XP)
	require.Len(t, p.Achievements, 1)
	assert.True(t, p.Achievements[0].EarnedAt.Equal(now))
	assert.Equal(t, "First Steps", p.Achievements[0].Name)
}

func TestCheckAchievements_Idempotent(t *testing.T) {
	p := models.NewUserProfile(now)
	p.ExercisesCompleted = 1
	p.Streak = 3
	withWords(&p, 10, 0)
	last := models.ExerciseRecord{Type: models.ExerciseTyping, Score: 100, TimeSpentSeconds: 20}
	h := models.ExerciseHistory{Exercises: []models.ExerciseRecord{last}}

	first := gamification.CheckAchievements(&p, &h, &last, now)
	require.NotEmpty(t, first)
	xp := p.XP

	second := gamification.CheckAchievements(&p, &h, &last, now)
	assert.Empty(t, second)
	assert.NotNil(t, second)
	assert.Equal(t, xp, p.XP)
}

func TestCheckAchievements_CatalogOrderAndXP(t *testing.T) {
	p := models.NewUserProfile(now)
	p.ExercisesCompleted = 1
	p.Statistics.ExercisesByType = map[string]int{"typing": 1}
	last := models.ExerciseRecord{Type: models.ExerciseTyping, Score: 100, TimeSpentSeconds: 20}
	h := models.ExerciseHistory{Exercises: []models.ExerciseRecord{last}}

	earned := gamification.CheckAchievements(&p, &h, &last, now)

	assert.Equal(t, []string{"first_steps", "flawless", "speed_demon", "typing_ace"}, achievementIDs(earned))
	assert.Equal(t, 10+20+40+40, p.XP)
	assert.Equal(t, p.XP, gamification.TotalXP(earned))
	assert.Equal(t, progression.LevelFromXP(p.XP), p.Level)
}

func TestCheckAchievements_NoChaining(t *testing.T) {
	p := models.NewUserProfile(now)
	progression.AddXP(&p, progression.CumulativeXPForLevel(5)-5, "setup")
	p.ExercisesCompleted = 1
	require.Equal(t, 4, p.Level)

	earned := gamification.CheckAchievements(&p, nil, nil, now)
	assert.Equal(t, []string{"first_steps"}, achievementIDs(earned))
	assert.Equal(t, 5, p.Level, "first_steps XP levels the profile up")
	assert.False(t, p.HasAchievement("rising_star"), "level reached in this pass waits for the next")

	next := gamification.CheckAchievements(&p, nil, nil, now)
	assert.Equal(t, []string{"rising_star"}, achievementIDs(next))
}

func TestAchievementStatus(t *testing.T) {
	p := models.NewUserProfile(now)
	p.Achievements = append(p.Achievements, models.EarnedAchievement{
		AchievementInfo: models.AchievementInfo{ID: "flawless"},
		EarnedAt:        now,
	})

	status := gamification.AchievementStatus(&p)
	require.Len(t, status, len(gamification.Catalog()))
	for _, s := range status {
		if s.ID == "flawless" {
			assert.True(t, s.Earned)
			require.NotNil(t, s.EarnedAt)
			assert.True(t, s.EarnedAt.Equal(now))
		} else {
			assert.False(t, s.Earned, s.ID)
			assert.Nil(t, s.EarnedAt, s.ID)
		}
	}
}

func TestCheckMilestones(t *testing.T) {
	p := models.NewUserProfile(now)
	withWords(&p, 12, 0)
	p.ExercisesCompleted = 10
	p.Streak = 7

	reached := gamification.CheckMilestones(&p, now)

	assert.Equal(t, []string{"words_10", "exercises_10", "streak_7"}, milestoneIDs(reached))
	assert.Equal(t, []string{"words_10", "exercises_10", "streak_7"}, p.AchievedMilestones)
	assert.Equal(t, 200, p.XP)
	assert.Equal(t, 200, gamification.MilestoneXP(reached))
	assert.Equal(t, progression.LevelFromXP(200), p.Level, "milestone XP keeps level consistent")
}

func TestCheckMilestones_FiresOnce(t *testing.T) {
	p := models.NewUserProfile(now)
	p.Streak = 7
	require.Len(t, gamification.CheckMilestones(&p, now), 1)

	// streak broke and was rebuilt
	p.Streak = 1
	assert.Empty(t, gamification.CheckMilestones(&p, now))
	p.Streak = 7
	assert.Empty(t, gamification.CheckMilestones(&p, now))
	assert.Equal(t, 100, p.XP)
}

func TestMilestoneStatus(t *testing.T) {
	p := models.NewUserProfile(now)
	withWords(&p, 60, 0)
	gamification.CheckMilestones(&p, now)

	byID := map[string]models.MilestoneStatus{}
	for _, s := range gamification.MilestoneStatus(&p) {
		byID[s.ID] = s
	}

	assert.True(t, byID["words_10"].Achieved)
	assert.Equal(t, 10, byID["words_10"].Progress, "progress is capped at the threshold")
	assert.True(t, byID["words_50"].Achieved)
	assert.False(t, byID["words_100"].Achieved)
	assert.Equal(t, 60, byID["words_100"].Progress)
	assert.Equal(t, 0, byID["streak_7"].Progress)

	assert.Equal(t, []string{"difficulty:intermediate"}, gamification.Unlocks(&p))
}
