package models

import "time"

type Rarity string

const (
	RarityBronze   Rarity = "bronze"
	RaritySilver   Rarity = "silver"
	RarityGold     Rarity = "gold"
	RarityPlatinum Rarity = "platinum"
)

// AchievementInfo is the serialisable part of an achievement definition.
type AchievementInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      Rarity `json:"rarity"`
	XPReward    int    `json:"xpReward"`
}

type EarnedAchievement struct {
	AchievementInfo
	EarnedAt time.Time `json:"earnedAt"`
}

type AchievementStatus struct {
	AchievementInfo
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
}

type ThresholdType string

const (
	ThresholdWords     ThresholdType = "words"
	ThresholdExercises ThresholdType = "exercises"
	ThresholdStreak    ThresholdType = "streak"
)

type Milestone struct {
	ID            string        `json:"id"`
	ThresholdType ThresholdType `json:"thresholdType"`
	Threshold     int           `json:"threshold"`
	Title         string        `json:"title"`
	Message       string        `json:"message"`
	XPReward      int           `json:"xpReward"`
	Unlock        string        `json:"unlock,omitempty"`
}

type MilestoneStatus struct {
	Milestone
	Achieved bool `json:"achieved"`
	Progress int  `json:"progress"`
}
