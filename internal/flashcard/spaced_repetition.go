// Package flashcard schedules vocabulary reviews. Mastery climbs one step per
// correct answer and drops one per miss; the review interval grows with it.
package flashcard

import (
	"sort"
	"time"

	"github.com/vytor/palabras/internal/models"
)

var intervalDays = []int{1, 3, 7, 14, 30}

// Interval returns how long a word at mastery waits before its next review.
func Interval(mastery int) time.Duration {
	if mastery < 0 {
		mastery = 0
	}
	if mastery >= len(intervalDays) {
		mastery = len(intervalDays) - 1
	}
	return time.Duration(intervalDays[mastery]) * 24 * time.Hour
}

// NextReview is the earliest time the word becomes due again.
func NextReview(w models.WordProgress) time.Time {
	return w.LastReviewed.Add(Interval(w.MasteryLevel))
}

// IsDue reports whether w should be reviewed at now. Mastered words never are.
func IsDue(w models.WordProgress, now time.Time) bool {
	if w.MasteryLevel >= models.MaxMastery {
		return false
	}
	return !now.Before(NextReview(w))
}

// WordsForReview returns up to limit due words, weakest and stalest first.
func WordsForReview(words map[string]models.WordProgress, now time.Time, limit int) []models.WordProgress {
	if limit <= 0 {
		return []models.WordProgress{}
	}

	due := make([]models.WordProgress, 0, len(words))
	for _, w := range words {
		if IsDue(w, now) {
			due = append(due, w)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if a.MasteryLevel != b.MasteryLevel {
			return a.MasteryLevel < b.MasteryLevel
		}
		if !a.LastReviewed.Equal(b.LastReviewed) {
			return a.LastReviewed.Before(b.LastReviewed)
		}
		return a.ID < b.ID
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due
}

// NewWordProgress starts tracking a word the learner has just met.
func NewWordProgress(word models.Word, now time.Time) models.WordProgress {
	ts := models.Timestamp(now)
	return models.WordProgress{
		ID:           word.ID,
		Category:     word.Category,
		Difficulty:   word.Difficulty,
		LastReviewed: ts,
		FirstLearned: ts,
	}
}

// ApplyAnswer records one answer for w.
func ApplyAnswer(w models.WordProgress, correct bool, now time.Time) models.WordProgress {
	w.TimesReviewed++
	if correct {
		w.CorrectCount++
		if w.MasteryLevel < models.MaxMastery {
			w.MasteryLevel++
		}
	} else {
		w.IncorrectCount++
		if w.MasteryLevel > 0 {
			w.MasteryLevel--
		}
	}
	w.LastReviewed = models.Timestamp(now)
	return w
}

// BlendSession builds a study session of at most size words: due reviews
// first, then unseen words to fill the remaining slots. Duplicates are
// dropped.
func BlendSession(review []models.WordProgress, unseen []models.Word, size int) []string {
	if size <= 0 {
		return []string{}
	}

	ids := make([]string, 0, size)
	seen := make(map[string]bool, size)
	add := func(id string) {
		if len(ids) < size && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, w := range review {
		add(w.ID)
	}
	for _, w := range unseen {
		add(w.ID)
	}
	return ids
}
