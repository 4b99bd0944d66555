package models

import "time"

// DateLayout is the calendar-day format used for streaks and daily activity.
const DateLayout = "2006-01-02"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyMixed        Difficulty = "mixed"
)

// Valid reports whether d is one of the known difficulty preferences.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyMixed:
		return true
	}
	return false
}

type Settings struct {
	DailyGoal            int        `json:"dailyGoal"`
	DifficultyPreference Difficulty `json:"difficultyPreference"`
	DarkMode             bool       `json:"darkMode"`
	SoundEffects         bool       `json:"soundEffects"`
}

type Statistics struct {
	TotalWordsLearned int            `json:"totalWordsLearned"`
	TotalExercises    int            `json:"totalExercises"`
	AverageAccuracy   float64        `json:"averageAccuracy"`
	TotalStudyTime    int            `json:"totalStudyTime"`
	DailyActivity     map[string]int `json:"dailyActivity"`
	// AccuracySum is the sum of every recorded score, in percent.
	AccuracySum     int            `json:"accuracySum"`
	ExercisesByType map[string]int `json:"exercisesByType"`
}

// UserProfile is the single aggregate persisted per installation.
type UserProfile struct {
	Level              int                     `json:"level"`
	XP                 int                     `json:"xp"`
	Streak             int                     `json:"streak"`
	LongestStreak      int                     `json:"longestStreak"`
	LastStudyDate      *string                 `json:"lastStudyDate"`
	ExercisesCompleted int                     `json:"exercisesCompleted"`
	StudyTimeSeconds   int                     `json:"studyTimeSeconds"`
	WordsLearned       map[string]WordProgress `json:"wordsLearned"`
	Achievements       []EarnedAchievement     `json:"achievements"`
	AchievedMilestones []string                `json:"achievedMilestones"`
	Settings           Settings                `json:"settings"`
	Statistics         Statistics              `json:"statistics"`
	CreatedAt          time.Time               `json:"createdAt"`
}

// DefaultSettings returns the settings of a freshly initialised profile.
func DefaultSettings() Settings {
	return Settings{
		DailyGoal:            10,
		DifficultyPreference: DifficultyBeginner,
		DarkMode:             false,
		SoundEffects:         true,
	}
}

// NewUserProfile returns the canonical default profile.
func NewUserProfile(now time.Time) UserProfile {
	return UserProfile{
		Level:              1,
		XP:                 0,
		WordsLearned:       map[string]WordProgress{},
		Achievements:       []EarnedAchievement{},
		AchievedMilestones: []string{},
		Settings:           DefaultSettings(),
		Statistics: Statistics{
			DailyActivity:   map[string]int{},
			ExercisesByType: map[string]int{},
		},
		CreatedAt: Timestamp(now),
	}
}

// HasAchievement reports whether the achievement id was already earned.
func (p *UserProfile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// HasMilestone reports whether the milestone id was already achieved.
func (p *UserProfile) HasMilestone(id string) bool {
	for _, m := range p.AchievedMilestones {
		if m == id {
			return true
		}
	}
	return false
}

// MasteredWords counts words at the maximum mastery level.
func (p *UserProfile) MasteredWords() int {
	n := 0
	for _, w := range p.WordsLearned {
		if w.MasteryLevel >= MaxMastery {
			n++
		}
	}
	return n
}

// Normalize fills nil collections so a decoded profile is safe to mutate.
func (p *UserProfile) Normalize() {
	if p.WordsLearned == nil {
		p.WordsLearned = map[string]WordProgress{}
	}
	if p.Achievements == nil {
		p.Achievements = []EarnedAchievement{}
	}
	if p.AchievedMilestones == nil {
		p.AchievedMilestones = []string{}
	}
	if p.Statistics.DailyActivity == nil {
		p.Statistics.DailyActivity = map[string]int{}
	}
	if p.Statistics.ExercisesByType == nil {
		p.Statistics.ExercisesByType = map[string]int{}
	}
}

// Clone returns a deep copy of the profile.
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.LastStudyDate != nil {
		d := *p.LastStudyDate
		out.LastStudyDate = &d
	}
	out.WordsLearned = make(map[string]WordProgress, len(p.WordsLearned))
	for k, v := range p.WordsLearned {
		out.WordsLearned[k] = v
	}
	out.Achievements = append([]EarnedAchievement{}, p.Achievements...)
	out.AchievedMilestones = append([]string{}, p.AchievedMilestones...)
	out.Statistics.DailyActivity = make(map[string]int, len(p.Statistics.DailyActivity))
	for k, v := range p.Statistics.DailyActivity {
		out.Statistics.DailyActivity[k] = v
	}
	out.Statistics.ExercisesByType = make(map[string]int, len(p.Statistics.ExercisesByType))
	for k, v := range p.Statistics.ExercisesByType {
		out.Statistics.ExercisesByType[k] = v
	}
	return out
}

// Timestamp strips the monotonic reading and pins t to UTC so that stored
// values compare equal after a JSON round trip.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Round(0)
}

// DateOf formats t as a calendar day in its own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
