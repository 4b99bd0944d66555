package models

import "time"

// MaxMastery is the mastery level at which a word leaves the review rotation.
const MaxMastery = 5

// Word is a read-only vocabulary entry supplied by the content catalog.
type Word struct {
	ID          string     `json:"id"`
	Word        string     `json:"word"`
	Translation string     `json:"translation"`
	Example     string     `json:"example"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Emoji       string     `json:"emoji,omitempty"`
	Mnemonic    string     `json:"mnemonic,omitempty"`
	Cognate     string     `json:"cognate,omitempty"`
}

// WordProgress tracks what a learner knows about one word.
type WordProgress struct {
	ID             string     `json:"id"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	TimesReviewed  int        `json:"timesReviewed"`
	CorrectCount   int        `json:"correctCount"`
	IncorrectCount int        `json:"incorrectCount"`
	MasteryLevel   int        `json:"masteryLevel"`
	LastReviewed   time.Time  `json:"lastReviewed"`
	FirstLearned   time.Time  `json:"firstLearned"`
}
