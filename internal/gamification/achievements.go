package gamification

import (
	"time"

	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/progression"
)

// Achievement is a badge definition together with its unlock rule.
type Achievement struct {
	models.AchievementInfo
	Condition Condition
}

func def(id, name, description, icon string, rarity models.Rarity, xp int, cond Condition) Achievement {
	return Achievement{
		AchievementInfo: models.AchievementInfo{
			ID:          id,
			Name:        name,
			Description: description,
			Icon:        icon,
			Rarity:      rarity,
			XPReward:    xp,
		},
		Condition: cond,
	}
}

var catalog = []Achievement{
	def("first_steps", "First Steps", "Complete your first exercise", "🐣", models.RarityBronze, 10,
		CounterAtLeast{CounterExercises, 1}),
	def("word_collector", "Word Collector", "Learn 10 words", "📚", models.RarityBronze, 25,
		CounterAtLeast{CounterWordsLearned, 10}),
	def("vocabulary_builder", "Vocabulary Builder", "Learn 50 words", "🏗️", models.RaritySilver, 50,
		CounterAtLeast{CounterWordsLearned, 50}),
	def("walking_dictionary", "Walking Dictionary", "Learn 100 words", "📖", models.RarityGold, 100,
		CounterAtLeast{CounterWordsLearned, 100}),
	def("first_mastery", "Got It Down", "Master your first word", "⭐", models.RarityBronze, 20,
		CounterAtLeast{CounterMasteredWords, 1}),
	def("master_of_words", "Master of Words", "Master 25 words", "🌟", models.RarityGold, 150,
		CounterAtLeast{CounterMasteredWords, 25}),
	def("on_a_roll", "On a Roll", "Study 3 days in a row", "🔥", models.RarityBronze, 15,
		CounterAtLeast{CounterStreak, 3}),
	def("week_warrior", "Week Warrior", "Study 7 days in a row", "⚔️", models.RaritySilver, 50,
		CounterAtLeast{CounterStreak, 7}),
	def("monthly_master", "Monthly Master", "Study 30 days in a row", "🗓️", models.RarityGold, 200,
		CounterAtLeast{CounterStreak, 30}),
	def("centurion", "Centurion", "Study 100 days in a row", "🏛️", models.RarityPlatinum, 500,
		CounterAtLeast{CounterStreak, 100}),
	def("flawless", "Flawless", "Score 100% on an exercise", "💯", models.RarityBronze, 20,
		LastScoreAtLeast{Score: 100}),
	def("perfectionist", "Perfectionist", "Score 100% on 10 exercises", "🎯", models.RaritySilver, 75,
		CounterAtLeast{CounterPerfectScores, 10}),
	def("speed_demon", "Speed Demon", "Score at least 90% in 30 seconds or less", "⚡", models.RaritySilver, 40,
		AllOf{LastScoreAtLeast{Score: 90}, LastTimeAtMost{Seconds: 30}}),
	def("typing_ace", "Typing Ace", "Score at least 95% on a typing exercise", "⌨️", models.RaritySilver, 40,
		LastScoreAtLeast{Score: 95, Type: models.ExerciseTyping}),
	def("wordsmith", "Wordsmith", "Complete 10 writing exercises", "✍️", models.RaritySilver, 50,
		CounterAtLeast{TypeCounter(models.ExerciseWriting), 10}),
	def("grammar_guru", "Grammar Guru", "Complete 25 grammar exercises", "🧠", models.RarityGold, 100,
		CounterAtLeast{TypeCounter(models.ExerciseGrammar), 25}),
	def("all_rounder", "All-Rounder", "Try every kind of exercise", "🎨", models.RaritySilver, 60,
		AllOf{
			CounterAtLeast{TypeCounter(models.ExerciseFlashcard), 1},
			CounterAtLeast{TypeCounter(models.ExerciseMultipleChoice), 1},
			CounterAtLeast{TypeCounter(models.ExerciseTyping), 1},
			CounterAtLeast{TypeCounter(models.ExerciseWriting), 1},
			CounterAtLeast{TypeCounter(models.ExerciseGrammar), 1},
		}),
	def("dedicated", "Dedicated", "Complete 100 exercises", "🏅", models.RarityGold, 150,
		CounterAtLeast{CounterExercises, 100}),
	def("sharp_mind", "Sharp Mind", "Keep 90% average accuracy over 20 exercises", "🔍", models.RarityGold, 120,
		AllOf{CounterAtLeast{CounterExercises, 20}, CounterAtLeast{CounterAccuracyPercent, 90}}),
	def("rising_star", "Rising Star", "Reach level 5", "🚀", models.RaritySilver, 50,
		CounterAtLeast{CounterLevel, 5}),
	def("polyglot", "Polyglot in Training", "Reach level 10", "👑", models.RarityPlatinum, 250,
		CounterAtLeast{CounterLevel, 10}),
	def("study_hour", "Hour of Power", "Study for a total of 60 minutes", "⏳", models.RarityBronze, 30,
		CounterAtLeast{CounterStudyMinutes, 60}),
	def("regular", "Regular", "Study on 14 different days", "📅", models.RaritySilver, 60,
		CounterAtLeast{CounterActiveDays, 14}),
}

// Catalog returns the achievement definitions in evaluation order.
func Catalog() []Achievement {
	return append([]Achievement(nil), catalog...)
}

// CheckAchievements grants every catalog achievement whose condition now
// holds and that p has not earned yet, crediting its XP through AddXP.
//
// Conditions are judged against the state as it was when the pass started,
// so XP granted here cannot unlock another achievement until the next call.
func CheckAchievements(p *models.UserProfile, h *models.ExerciseHistory, last *models.ExerciseRecord, now time.Time) []models.EarnedAchievement {
	earned := []models.EarnedAchievement{}
	if p == nil {
		return earned
	}

	facts := NewFacts(p, h, last)
	for _, a := range catalog {
		if p.HasAchievement(a.ID) || !Evaluate(a.Condition, facts) {
			continue
		}
		e := models.EarnedAchievement{AchievementInfo: a.AchievementInfo, EarnedAt: models.Timestamp(now)}
		p.Achievements = append(p.Achievements, e)
		progression.AddXP(p, a.XPReward, "achievement:"+a.ID)
		earned = append(earned, e)
	}
	return earned
}

// AchievementStatus lists every achievement with whether p has earned it.
func AchievementStatus(p *models.UserProfile) []models.AchievementStatus {
	byID := make(map[string]time.Time, len(p.Achievements))
	for _, e := range p.Achievements {
		byID[e.ID] = e.EarnedAt
	}

	out := make([]models.AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		s := models.AchievementStatus{AchievementInfo: a.AchievementInfo}
		if at, ok := byID[a.ID]; ok {
			s.Earned = true
			s.EarnedAt = &at
		}
		out = append(out, s)
	}
	return out
}

// TotalXP sums the rewards of the given achievements.
func TotalXP(earned []models.EarnedAchievement) int {
	total := 0
	for _, e := range earned {
		total += e.XPReward
	}
	return total
}
