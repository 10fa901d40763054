package domain

import "time"

// ─── Statistics ─────────────────────────────────────────────────────────────

// HabitStats is the per-habit bundle. The tracked view only counts days that
// have a record; the challenge view counts every day since the challenge began.
type HabitStats struct {
	CurrentStreak      int     `json:"current_streak"`
	LongestStreak      int     `json:"longest_streak"`
	TrackedCompleted   int     `json:"tracked_completed"`
	TrackedTotal       int     `json:"tracked_total"`
	TrackedPercent     float64 `json:"tracked_percent"`
	ChallengeCompleted int     `json:"challenge_completed"`
	ChallengeDays      int     `json:"challenge_days"`
	ChallengePercent   float64 `json:"challenge_percent"`
}

// HabitSummary pairs a habit with its computed stats.
type HabitSummary struct {
	Habit Habit      `json:"habit"`
	Stats HabitStats `json:"stats"`
}

// OverallStats summarises all of a user's habits using the challenge view.
type OverallStats struct {
	CompletionRate    float64        `json:"overall_completion_rate"`
	TotalCompleted    int            `json:"total_completed"`
	TotalPossible     int            `json:"total_possible"`
	Best              *HabitSummary  `json:"best_habit,omitempty"`
	Worst             *HabitSummary  `json:"worst_habit,omitempty"`
	Habits            []HabitSummary `json:"habit_stats"`
	PerfectDays       int            `json:"perfect_days"`
	AlmostPerfectDays int            `json:"almost_perfect_days"`
	DaysActive        int            `json:"days_active"`
}

// CalendarStats are the date-level counts computed across every habit.
type CalendarStats struct {
	PerfectDays       int `json:"perfect_days"`
	AlmostPerfectDays int `json:"almost_perfect_days"`
	DaysActive        int `json:"days_active"`
}

// AggregateStats is the flat snapshot fed to achievement predicates.
// It is recomputed on every evaluation and never persisted.
type AggregateStats struct {
	TotalCompleted       int     `json:"total_completed"`
	DaysActive           int     `json:"days_active"`
	PerfectDays          int     `json:"perfect_days"`
	AlmostPerfectDays    int     `json:"almost_perfect_days"`
	MaxStreak            int     `json:"max_streak"`
	CurrentStreak        int     `json:"current_streak"`
	MinHabitStreak       int     `json:"min_habit_streak"`
	OverallCompletion    float64 `json:"overall_completion"`
	BestHabitCompletion  float64 `json:"best_habit_completion"`
	WorstHabitCompletion float64 `json:"worst_habit_completion"`
}

// StatField names an AggregateStats counter that can back a progress bar.
type StatField string

const (
	FieldTotalCompleted    StatField = "total_completed"
	FieldDaysActive        StatField = "days_active"
	FieldPerfectDays       StatField = "perfect_days"
	FieldAlmostPerfectDays StatField = "almost_perfect_days"
	FieldMaxStreak         StatField = "max_streak"
	FieldCurrentStreak     StatField = "current_streak"
	FieldMinHabitStreak    StatField = "min_habit_streak"
	FieldOverallCompletion StatField = "overall_completion"
)

// Field returns the value of f, and false for an unknown field.
func (s AggregateStats) Field(f StatField) (float64, bool) {
	switch f {
	case FieldTotalCompleted:
		return float64(s.TotalCompleted), true
	case FieldDaysActive:
		return float64(s.DaysActive), true
	case FieldPerfectDays:
		return float64(s.PerfectDays), true
	case FieldAlmostPerfectDays:
		return float64(s.AlmostPerfectDays), true
	case FieldMaxStreak:
		return float64(s.MaxStreak), true
	case FieldCurrentStreak:
		return float64(s.CurrentStreak), true
	case FieldMinHabitStreak:
		return float64(s.MinHabitStreak), true
	case FieldOverallCompletion:
		return s.OverallCompletion, true
	}
	return 0, false
}

// WindowDay is one date of the challenge window with its completion count.
// Days without any entry have Tracked false.
type WindowDay struct {
	Date      time.Time `json:"date"`
	Completed int       `json:"completed"`
	Habits    int       `json:"habits"`
	Tracked   bool      `json:"tracked"`
}
