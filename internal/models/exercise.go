package models

import "time"

type ExerciseType string

const (
	ExerciseFlashcard      ExerciseType = "flashcard"
	ExerciseMultipleChoice ExerciseType = "multipleChoice"
	ExerciseTyping         ExerciseType = "typing"
	ExerciseWriting        ExerciseType = "writing"
	ExerciseGrammar        ExerciseType = "grammar"
)

// ExerciseRecord is immutable once appended to the history.
type ExerciseRecord struct {
	ID               string       `json:"id"`
	Type             ExerciseType `json:"type"`
	Score            int          `json:"score"`
	TimeSpentSeconds int          `json:"timeSpentSeconds"`
	WordIDs          []string     `json:"wordIds"`
	CompletedAt      time.Time    `json:"completedAt"`
	Date             string       `json:"date"`
}

// ExerciseHistory is the ordered log of every recorded exercise.
type ExerciseHistory struct {
	Exercises []ExerciseRecord `json:"exerciseHistory"`
}

// ExerciseInput is what a view submits when an exercise finishes.
type ExerciseInput struct {
	Type             ExerciseType `json:"type"`
	Score            int          `json:"score"`
	TimeSpentSeconds int          `json:"timeSpentSeconds"`
	WordIDs          []string     `json:"wordIds"`
	// Results optionally marks individual words right or wrong. Words absent
	// from the map are judged by the overall score.
	Results map[string]bool `json:"results,omitempty"`
}

type XPResult struct {
	OldXP     int    `json:"oldXp"`
	NewXP     int    `json:"newXp"`
	OldLevel  int    `json:"oldLevel"`
	NewLevel  int    `json:"newLevel"`
	LeveledUp bool   `json:"leveledUp"`
	Reason    string `json:"reason"`
}

type StreakResult struct {
	OldStreak     int  `json:"oldStreak"`
	Streak        int  `json:"streak"`
	LongestStreak int  `json:"longestStreak"`
	Changed       bool `json:"changed"`
	Bonus         int  `json:"bonus"`
}

// XPSummary breaks down every XP grant made while recording one exercise.
type XPSummary struct {
	Earned        int  `json:"earned"`
	ExerciseXP    int  `json:"exerciseXp"`
	AchievementXP int  `json:"achievementXp"`
	StreakBonus   int  `json:"streakBonus"`
	MilestoneXP   int  `json:"milestoneXp"`
	OldLevel      int  `json:"oldLevel"`
	NewLevel      int  `json:"newLevel"`
	LeveledUp     bool `json:"leveledUp"`
	TotalXP       int  `json:"totalXp"`
}

// ExerciseOutcome is the bundle returned to the view after an exercise.
type ExerciseOutcome struct {
	Exercise     ExerciseRecord      `json:"exercise"`
	XP           XPSummary           `json:"xp"`
	Achievements []EarnedAchievement `json:"achievements"`
	Milestones   []Milestone         `json:"milestones"`
	Streak       StreakResult        `json:"streak"`
	Profile      UserProfile         `json:"profile"`
}
