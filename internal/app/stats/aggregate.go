package stats

import (
	"slices"
	"time"

	"github.com/habit21/habit21/internal/domain"
)

// Aggregate builds the flat snapshot fed to achievement predicates.
// today is the evaluation day: it bounds the challenge window and is the
// reference for current streaks.
func Aggregate(habits []domain.Habit, today time.Time) domain.AggregateStats {
	overall := Overall(habits, today)

	agg := domain.AggregateStats{
		TotalCompleted:    overall.TotalCompleted,
		DaysActive:        overall.DaysActive,
		PerfectDays:       overall.PerfectDays,
		AlmostPerfectDays: overall.AlmostPerfectDays,
		OverallCompletion: overall.CompletionRate,
	}
	if overall.Best != nil {
		agg.BestHabitCompletion = overall.Best.Stats.ChallengePercent
		agg.WorstHabitCompletion = overall.Worst.Stats.ChallengePercent
	}

	for i, hs := range overall.Habits {
		agg.MaxStreak = max(agg.MaxStreak, hs.Stats.LongestStreak)
		agg.CurrentStreak = max(agg.CurrentStreak, hs.Stats.CurrentStreak)
		if i == 0 {
			agg.MinHabitStreak = hs.Stats.CurrentStreak
		} else {
			agg.MinHabitStreak = min(agg.MinHabitStreak, hs.Stats.CurrentStreak)
		}
	}
	return agg
}

// AggregateAsOf replays Aggregate as it would have looked on cutoff: only
// entries dated on or before cutoff are kept and cutoff acts as "today".
func AggregateAsOf(habits []domain.Habit, cutoff time.Time) domain.AggregateStats {
	return Aggregate(Truncate(habits, cutoff), cutoff)
}

// Truncate returns copies of habits holding only entries dated on or before cutoff.
func Truncate(habits []domain.Habit, cutoff time.Time) []domain.Habit {
	limit := domain.DateOf(cutoff)
	out := make([]domain.Habit, len(habits))
	for i, h := range habits {
		kept := make([]domain.CompletionRecord, 0, len(h.Entries))
		for _, e := range h.Entries {
			if !domain.DateOf(e.Date).After(limit) {
				kept = append(kept, e)
			}
		}
		h.Entries = kept
		out[i] = h
	}
	return out
}

// ActiveDates returns the distinct entry dates across all habits, ascending.
func ActiveDates(habits []domain.Habit) []time.Time {
	seen := make(map[time.Time]struct{})
	var out []time.Time
	for _, h := range habits {
		for _, e := range h.Entries {
			d := domain.DateOf(e.Date)
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}
