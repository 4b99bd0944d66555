// Package gamification evaluates achievements and milestones against a
// learner's profile. Conditions are plain data interpreted by Evaluate, so
// every rule is a total function of the recorded state.
package gamification

import (
	"math"

	"github.com/vytor/palabras/internal/models"
)

// Counter names a number derived from the profile and history.
type Counter string

const (
	CounterWordsLearned      Counter = "wordsLearned"
	CounterMasteredWords     Counter = "masteredWords"
	CounterExercises         Counter = "exercises"
	CounterStreak            Counter = "streak"
	CounterLongestStreak     Counter = "longestStreak"
	CounterLevel             Counter = "level"
	CounterXP                Counter = "xp"
	CounterAccuracyPercent   Counter = "accuracyPercent"
	CounterStudyMinutes      Counter = "studyMinutes"
	CounterPerfectScores     Counter = "perfectScores"
	CounterActiveDays        Counter = "activeDays"
	CounterExerciseTypesUsed Counter = "exerciseTypesUsed"
)

// TypeCounter counts exercises of one type.
func TypeCounter(t models.ExerciseType) Counter {
	return Counter("type:" + string(t))
}

// Facts is a read-only summary of the state a condition may inspect.
type Facts struct {
	counters map[Counter]int
	last     *models.ExerciseRecord
}

// NewFacts summarises profile, history and the exercise that triggered the
// evaluation, which may be nil.
func NewFacts(p *models.UserProfile, h *models.ExerciseHistory, last *models.ExerciseRecord) Facts {
	f := Facts{counters: map[Counter]int{}, last: last}
	if p == nil {
		return f
	}

	f.counters[CounterWordsLearned] = len(p.WordsLearned)
	f.counters[CounterMasteredWords] = p.MasteredWords()
	f.counters[CounterExercises] = p.ExercisesCompleted
	f.counters[CounterStreak] = p.Streak
	f.counters[CounterLongestStreak] = p.LongestStreak
	f.counters[CounterLevel] = p.Level
	f.counters[CounterXP] = p.XP
	f.counters[CounterAccuracyPercent] = accuracyPercent(p.Statistics.AverageAccuracy)
	f.counters[CounterStudyMinutes] = p.StudyTimeSeconds / 60
	f.counters[CounterActiveDays] = len(p.Statistics.DailyActivity)
	f.counters[CounterExerciseTypesUsed] = len(p.Statistics.ExercisesByType)
	for t, n := range p.Statistics.ExercisesByType {
		f.counters[TypeCounter(models.ExerciseType(t))] = n
	}

	if h != nil {
		perfect := 0
		for _, e := range h.Exercises {
			if e.Score >= 100 {
				perfect++
			}
		}
		f.counters[CounterPerfectScores] = perfect
	}
	return f
}

// Value returns the counter, or 0 when it is unknown.
func (f Facts) Value(c Counter) int {
	return f.counters[c]
}

// Last is the exercise that triggered the evaluation, if any.
func (f Facts) Last() (models.ExerciseRecord, bool) {
	if f.last == nil {
		return models.ExerciseRecord{}, false
	}
	return *f.last, true
}

// Condition is one node of the rule vocabulary.
type Condition interface {
	holds(f Facts) bool
}

// CounterAtLeast holds when the counter has reached Threshold.
type CounterAtLeast struct {
	Counter   Counter
	Threshold int
}

func (c CounterAtLeast) holds(f Facts) bool {
	return f.Value(c.Counter) >= c.Threshold
}

// LastScoreAtLeast holds when the triggering exercise scored at least Score,
// optionally restricted to one exercise type.
type LastScoreAtLeast struct {
	Score int
	Type  models.ExerciseType
}

func (c LastScoreAtLeast) holds(f Facts) bool {
	last, ok := f.Last()
	if !ok {
		return false
	}
	if c.Type != "" && last.Type != c.Type {
		return false
	}
	return last.Score >= c.Score
}

// LastTimeAtMost holds when the triggering exercise took at most Seconds.
type LastTimeAtMost struct {
	Seconds int
}

func (c LastTimeAtMost) holds(f Facts) bool {
	last, ok := f.Last()
	return ok && last.TimeSpentSeconds <= c.Seconds
}

// AllOf holds when every child holds. An empty AllOf never holds.
type AllOf []Condition

func (c AllOf) holds(f Facts) bool {
	if len(c) == 0 {
		return false
	}
	for _, cond := range c {
		if !Evaluate(cond, f) {
			return false
		}
	}
	return true
}

// Evaluate interprets cond against f. A nil condition never holds.
func Evaluate(cond Condition, f Facts) bool {
	if cond == nil {
		return false
	}
	return cond.holds(f)
}

// accuracyPercent truncates a 0..1 accuracy to whole percent so a threshold
// is only met once the average actually reaches it. The epsilon absorbs
// float error such as 0.57*100 = 56.99999999999999.
func accuracyPercent(acc float64) int {
	return int(math.Floor(acc*100 + 1e-9))
}
