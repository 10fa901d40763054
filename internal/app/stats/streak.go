// Package stats implements the habit21 calculators: streaks, the dual
// completion metrics and the flat aggregate fed to achievement rules.
// Every function is pure and recomputes from the full entry set.
package stats

import (
	"slices"
	"time"

	"github.com/habit21/habit21/internal/domain"
)

// CurrentStreak counts consecutive completed days walking backward from the
// day before asOf. The asOf day itself never counts, so an unfinished "today"
// does not zero the streak.
func CurrentStreak(entries []domain.CompletionRecord, asOf time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	sorted := sortedByDate(entries)
	slices.Reverse(sorted)

	streak := 0
	expected := domain.DateOf(asOf).AddDate(0, 0, -1)

	for _, e := range sorted {
		d := domain.DateOf(e.Date)
		if d.After(expected) {
			// asOf and later, or a day already counted
			continue
		}
		if !d.Equal(expected) || !e.Completed {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days.
// An incomplete entry resets the run to 0; a completed entry after a gap
// starts a new run at 1.
func LongestStreak(entries []domain.CompletionRecord) int {
	if len(entries) == 0 {
		return 0
	}

	best, run := 0, 0
	var prev time.Time

	for i, e := range sortedByDate(entries) {
		d := domain.DateOf(e.Date)
		if !e.Completed {
			run = 0
			prev = d
			continue
		}
		if i == 0 || domain.DaysBetween(prev, d) == 1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
		prev = d
	}
	return best
}

// sortedByDate returns an ascending copy; the caller's slice is left alone.
func sortedByDate(entries []domain.CompletionRecord) []domain.CompletionRecord {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b domain.CompletionRecord) int {
		return domain.DateOf(a.Date).Compare(domain.DateOf(b.Date))
	})
	return out
}
