// Package report renders the learner's progress as a spreadsheet.
package report

import (
	"fmt"
	"sort"

	"github.com/vytor/palabras/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary      = "Summary"
	SheetWords        = "Words"
	SheetExercises    = "Exercises"
	SheetAchievements = "Achievements"

	timeLayout = "2006-01-02 15:04"
)

// ProgressXLSX renders profile and history as an .xlsx workbook.
func ProgressXLSX(p models.UserProfile, h models.ExerciseHistory) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetWords, SheetExercises, SheetAchievements} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	w := &sheetWriter{f: f, header: header}
	w.summary(p)
	w.words(p)
	w.exercises(h)
	w.achievements(p)
	if w.err != nil {
		return nil, w.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so the row-writing code stays flat.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("%s row %d: %w", sheet, n, err)
	}
}

func (w *sheetWriter) headerRow(sheet string, titles ...any) {
	w.row(sheet, 1, titles...)
	if w.err == nil {
		w.err = w.f.SetRowStyle(sheet, 1, 1, w.header)
	}
}

func (w *sheetWriter) summary(p models.UserProfile) {
	last := ""
	if p.LastStudyDate != nil {
		last = *p.LastStudyDate
	}
	rows := [][]any{
		{"Level", p.Level},
		{"XP", p.XP},
		{"Streak", p.Streak},
		{"Longest streak", p.LongestStreak},
		{"Last study date", last},
		{"Exercises completed", p.ExercisesCompleted},
		{"Study time (minutes)", p.StudyTimeSeconds / 60},
		{"Words learned", len(p.WordsLearned)},
		{"Words mastered", p.MasteredWords()},
		{"Average accuracy (%)", fmt.Sprintf("%.1f", p.Statistics.AverageAccuracy*100)},
		{"Achievements", len(p.Achievements)},
		{"Milestones", len(p.AchievedMilestones)},
	}
	w.headerRow(SheetSummary, "Metric", "Value")
	for i, r := range rows {
		w.row(SheetSummary, i+2, r...)
	}
}

func (w *sheetWriter) words(p models.UserProfile) {
	ids := make([]string, 0, len(p.WordsLearned))
	for id := range p.WordsLearned {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w.headerRow(SheetWords, "Word", "Category", "Difficulty", "Mastery", "Reviewed", "Correct", "Incorrect", "Last reviewed", "First learned")
	for i, id := range ids {
		wp := p.WordsLearned[id]
		w.row(SheetWords, i+2, wp.ID, wp.Category, string(wp.Difficulty), wp.MasteryLevel,
			wp.TimesReviewed, wp.CorrectCount, wp.IncorrectCount,
			wp.LastReviewed.Format(timeLayout), wp.FirstLearned.Format(timeLayout))
	}
}

func (w *sheetWriter) exercises(h models.ExerciseHistory) {
	w.headerRow(SheetExercises, "Date", "Type", "Score", "Seconds", "Words", "Completed at")
	for i, e := range h.Exercises {
		w.row(SheetExercises, i+2, e.Date, string(e.Type), e.Score, e.TimeSpentSeconds,
			len(e.WordIDs), e.CompletedAt.Format(timeLayout))
	}
}

func (w *sheetWriter) achievements(p models.UserProfile) {
	w.headerRow(SheetAchievements, "Achievement", "Rarity", "XP", "Earned at")
	for i, a := range p.Achievements {
		w.row(SheetAchievements, i+2, a.Name, string(a.Rarity), a.XPReward, a.EarnedAt.Format(timeLayout))
	}
}
