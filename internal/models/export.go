package models

import "time"

// ExportFormatVersion tags documents produced by the store export.
const ExportFormatVersion = "1.0"

type ExportDocument struct {
	UserData   *UserProfile     `json:"userData"`
	Progress   *ExerciseHistory `json:"progress"`
	ExportDate time.Time        `json:"exportDate"`
	Version    string           `json:"version"`
}

type LevelProgress struct {
	Level       int     `json:"level"`
	XP          int     `json:"xp"`
	XPIntoLevel int     `json:"xpIntoLevel"`
	XPForNext   int     `json:"xpForNext"`
	Percent     float64 `json:"percent"`
}

type DailyProgress struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Goal      int    `json:"goal"`
	Met       bool   `json:"met"`
}
