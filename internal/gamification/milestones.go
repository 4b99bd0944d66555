package gamification

import (
	"time"

	"github.com/vytor/palabras/internal/models"
	"github.com/vytor/palabras/internal/progression"
)

var milestones = []models.Milestone{
	{ID: "words_10", ThresholdType: models.ThresholdWords, Threshold: 10, XPReward: 50,
		Title: "Ten Words In", Message: "Your first ten words are in the bag."},
	{ID: "words_50", ThresholdType: models.ThresholdWords, Threshold: 50, XPReward: 100,
		Title: "Fifty Strong", Message: "Fifty words! Intermediate vocabulary is now open.", Unlock: "difficulty:intermediate"},
	{ID: "words_100", ThresholdType: models.ThresholdWords, Threshold: 100, XPReward: 200,
		Title: "Triple Digits", Message: "One hundred words. You can hold a simple conversation."},
	{ID: "words_250", ThresholdType: models.ThresholdWords, Threshold: 250, XPReward: 400,
		Title: "Quarter Thousand", Message: "250 words learned. Advanced vocabulary is now open.", Unlock: "difficulty:advanced"},
	{ID: "words_500", ThresholdType: models.ThresholdWords, Threshold: 500, XPReward: 750,
		Title: "Half a Thousand", Message: "500 words. Time to start reading real books."},
	{ID: "exercises_10", ThresholdType: models.ThresholdExercises, Threshold: 10, XPReward: 50,
		Title: "Warming Up", Message: "Ten exercises done."},
	{ID: "exercises_50", ThresholdType: models.ThresholdExercises, Threshold: 50, XPReward: 100,
		Title: "Practice Makes Progress", Message: "Fifty exercises completed.", Unlock: "theme:night"},
	{ID: "exercises_100", ThresholdType: models.ThresholdExercises, Threshold: 100, XPReward: 200,
		Title: "Centennial", Message: "One hundred exercises. That is real commitment."},
	{ID: "streak_7", ThresholdType: models.ThresholdStreak, Threshold: 7, XPReward: 100,
		Title: "One Week", Message: "Seven days in a row!"},
	{ID: "streak_30", ThresholdType: models.ThresholdStreak, Threshold: 30, XPReward: 300,
		Title: "One Month", Message: "Thirty days without a break.", Unlock: "theme:gold"},
	{ID: "streak_100", ThresholdType: models.ThresholdStreak, Threshold: 100, XPReward: 1000,
		Title: "One Hundred Days", Message: "A hundred-day streak. Legendary."},
}

var thresholdCounters = map[models.ThresholdType]Counter{
	models.ThresholdWords:     CounterWordsLearned,
	models.ThresholdExercises: CounterExercises,
	models.ThresholdStreak:    CounterStreak,
}

// Milestones returns the milestone table in evaluation order.
func Milestones() []models.Milestone {
	return append([]models.Milestone(nil), milestones...)
}

func milestoneValue(m models.Milestone, f Facts) int {
	c, ok := thresholdCounters[m.ThresholdType]
	if !ok {
		return 0
	}
	return f.Value(c)
}

// CheckMilestones marks every newly reached milestone on p and credits its
// reward through AddXP. Each milestone fires at most once.
func CheckMilestones(p *models.UserProfile, now time.Time) []models.Milestone {
	reached := []models.Milestone{}
	if p == nil {
		return reached
	}

	facts := NewFacts(p, nil, nil)
	for _, m := range milestones {
		if p.HasMilestone(m.ID) || milestoneValue(m, facts) < m.Threshold {
			continue
		}
		p.AchievedMilestones = append(p.AchievedMilestones, m.ID)
		progression.AddXP(p, m.XPReward, "milestone:"+m.ID)
		reached = append(reached, m)
	}
	return reached
}

// MilestoneStatus reports every milestone with its progress toward the
// threshold, capped at the threshold.
func MilestoneStatus(p *models.UserProfile) []models.MilestoneStatus {
	facts := NewFacts(p, nil, nil)
	out := make([]models.MilestoneStatus, 0, len(milestones))
	for _, m := range milestones {
		progress := milestoneValue(m, facts)
		if progress > m.Threshold {
			progress = m.Threshold
		}
		out = append(out, models.MilestoneStatus{
			Milestone: m,
			Achieved:  p.HasMilestone(m.ID),
			Progress:  progress,
		})
	}
	return out
}

// MilestoneXP sums the rewards of the given milestones.
func MilestoneXP(reached []models.Milestone) int {
	total := 0
	for _, m := range reached {
		total += m.XPReward
	}
	return total
}

// Unlocks lists the unlock tags of every milestone p has achieved.
func Unlocks(p *models.UserProfile) []string {
	out := []string{}
	for _, m := range milestones {
		if m.Unlock != "" && p.HasMilestone(m.ID) {
			out = append(out, m.Unlock)
		}
	}
	return out
}
