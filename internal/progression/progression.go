// Package progression turns activity into experience points, levels and
// streaks. AddXP is the only function that changes a profile's XP or level.
package progression

import (
	"math"
	"time"

	"github.com/vytor/palabras/internal/models"
)

// MaxLevel bounds the level scan; no realistic XP total gets near it.
const MaxLevel = 10000

// MaxXP is the XP ceiling. AddXP saturates here and stored profiles above it
// are rejected.
var MaxXP = CumulativeXPForLevel(MaxLevel)

// XPRequiredForLevel is the XP needed to advance from level to level+1.
func XPRequiredForLevel(level int) int {
	if level < 1 {
		return 0
	}
	return int(math.Floor(100 * float64(level) * 1.5))
}

// CumulativeXPForLevel is the total XP at which level is reached.
func CumulativeXPForLevel(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += XPRequiredForLevel(l)
	}
	return total
}

// LevelFromXP returns the highest level whose cumulative cost is covered by
// xp. Costs are accumulated from level 1 upward.
func LevelFromXP(xp int) int {
	level := 1
	spent := 0
	for level < MaxLevel {
		cost := XPRequiredForLevel(level)
		if spent+cost > xp {
			break
		}
		spent += cost
		level++
	}
	return level
}

// Progress describes how far xp is into its current level.
func Progress(xp int) models.LevelProgress {
	level := LevelFromXP(xp)
	into := xp - CumulativeXPForLevel(level)
	need := XPRequiredForLevel(level)
	pct := 0.0
	if need > 0 {
		pct = math.Round(float64(into)/float64(need)*1000) / 10
	}
	return models.LevelProgress{
		Level:       level,
		XP:          xp,
		XPIntoLevel: into,
		XPForNext:   need,
		Percent:     pct,
	}
}

// AddXP grants amount XP and recomputes the level. Non-positive amounts
// leave the profile untouched and the total saturates at MaxXP.
func AddXP(p *models.UserProfile, amount int, reason string) models.XPResult {
	res := models.XPResult{
		OldXP:    p.XP,
		OldLevel: p.Level,
		Reason:   reason,
	}
	if amount > 0 && p.XP < MaxXP {
		if amount >= MaxXP-p.XP {
			p.XP = MaxXP
		} else {
			p.XP += amount
		}
	}
	p.Level = LevelFromXP(p.XP)
	res.NewXP = p.XP
	res.NewLevel = p.Level
	res.LeveledUp = res.NewLevel > res.OldLevel
	return res
}

var streakBonuses = []struct {
	days  int
	bonus int
}{
	{100, 1000},
	{60, 500},
	{30, 200},
	{14, 100},
	{7, 50},
}

// StreakBonus returns the reward of the highest breakpoint reached by streak.
func StreakBonus(streak int) int {
	for _, b := range streakBonuses {
		if streak >= b.days {
			return b.bonus
		}
	}
	return 0
}

// UpdateStreak records study on today's calendar day. Calling it again on
// the same day changes nothing. Bonus is non-zero only when the streak value
// moved on this call; the caller grants it.
func UpdateStreak(p *models.UserProfile, today time.Time) models.StreakResult {
	res := models.StreakResult{OldStreak: p.Streak}
	day := models.DateOf(today)
	yesterday := models.DateOf(today.AddDate(0, 0, -1))

	switch {
	case p.LastStudyDate != nil && *p.LastStudyDate == day:
	case p.LastStudyDate != nil && *p.LastStudyDate == yesterday:
		p.Streak++
		p.LastStudyDate = &day
	default:
		p.Streak = 1
		p.LastStudyDate = &day
	}

	if p.Streak > p.LongestStreak {
		p.LongestStreak = p.Streak
	}

	res.Streak = p.Streak
	res.LongestStreak = p.LongestStreak
	res.Changed = res.Streak != res.OldStreak
	if res.Changed {
		res.Bonus = StreakBonus(p.Streak)
	}
	return res
}

var baseXP = map[models.ExerciseType]int{
	models.ExerciseFlashcard:      5,
	models.ExerciseMultipleChoice: 8,
	models.ExerciseTyping:         12,
	models.ExerciseWriting:        15,
	models.ExerciseGrammar:        20,
}

// lowestBaseXP is used for exercise types added after this table.
const lowestBaseXP = 5

// BaseXP returns the XP for completing one exercise of type t.
func BaseXP(t models.ExerciseType) int {
	if xp, ok := baseXP[t]; ok {
		return xp
	}
	return lowestBaseXP
}

// KnownExerciseType reports whether t has its own base XP entry.
func KnownExerciseType(t models.ExerciseType) bool {
	_, ok := baseXP[t]
	return ok
}

// ScoreMultiplier scales base XP by a 0-100 score.
func ScoreMultiplier(score int) float64 {
	switch {
	case score >= 95:
		return 2
	case score >= 80:
		return 1.5
	case score >= 50:
		return 1
	default:
		return 0.5
	}
}

// ExerciseXP is the XP earned by one exercise before any bonus.
func ExerciseXP(t models.ExerciseType, score int) int {
	return int(math.Floor(float64(BaseXP(t)) * ScoreMultiplier(score)))
}
