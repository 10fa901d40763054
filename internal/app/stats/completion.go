package stats

import (
	"math"
	"slices"
	"time"

	"github.com/habit21/habit21/internal/domain"
)

// DefaultChallengeDays is the length of a standard challenge window.
const DefaultChallengeDays = 21

// ChallengeStart returns the earliest entry date across all habits.
// All habits share this start so they share one denominator.
func ChallengeStart(habits []domain.Habit) (time.Time, bool) {
	var start time.Time
	found := false
	for _, h := range habits {
		for _, e := range h.Entries {
			d := domain.DateOf(e.Date)
			if !found || d.Before(start) {
				start, found = d, true
			}
		}
	}
	return start, found
}

// ChallengeDays counts calendar days from start to today inclusive, floored at 1.
func ChallengeDays(start, today time.Time) int {
	return max(1, domain.DaysBetween(start, today)+1)
}

// ChallengeRange lists the dates of a challenge window beginning at start.
func ChallengeRange(start time.Time, days int) []time.Time {
	if days <= 0 {
		days = DefaultChallengeDays
	}
	out := make([]time.Time, days)
	first := domain.DateOf(start)
	for i := range out {
		out[i] = first.AddDate(0, 0, i)
	}
	return out
}

// Window lays the user's entries over the challenge window: one row per
// date from the challenge start, days long. Empty when there are no entries.
func Window(habits []domain.Habit, days int) []domain.WindowDay {
	start, ok := ChallengeStart(habits)
	if !ok {
		return nil
	}

	perDay := completedPerDay(habits)
	dates := ChallengeRange(start, days)
	out := make([]domain.WindowDay, len(dates))
	for i, d := range dates {
		done, tracked := perDay[d]
		out[i] = domain.WindowDay{Date: d, Completed: done, Habits: len(habits), Tracked: tracked}
	}
	return out
}

// Percent returns part/whole as a percentage rounded to one decimal and
// clamped to [0, 100]. A zero whole yields 0.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return clampPct(round1(float64(part) / float64(whole) * 100))
}

// ForHabit computes the per-habit bundle. start is the user's challenge
// start; it is ignored when ok is false (no entries anywhere).
func ForHabit(h domain.Habit, start time.Time, ok bool, today time.Time) domain.HabitStats {
	completed := h.CompletedCount()
	days := 1
	if ok {
		days = ChallengeDays(start, today)
	}
	return domain.HabitStats{
		CurrentStreak:      CurrentStreak(h.Entries, today),
		LongestStreak:      LongestStreak(h.Entries),
		TrackedCompleted:   completed,
		TrackedTotal:       len(h.Entries),
		TrackedPercent:     Percent(completed, len(h.Entries)),
		ChallengeCompleted: completed,
		ChallengeDays:      days,
		ChallengePercent:   Percent(completed, days),
	}
}

// Overall computes the cross-habit bundle. The overall rate sums the
// challenge view, not the tracked totals.
func Overall(habits []domain.Habit, today time.Time) domain.OverallStats {
	start, ok := ChallengeStart(habits)

	var out domain.OverallStats
	out.Habits = make([]domain.HabitSummary, 0, len(habits))
	for _, h := range habits {
		hs := ForHabit(h, start, ok, today)
		out.Habits = append(out.Habits, domain.HabitSummary{Habit: h, Stats: hs})
		out.TotalCompleted += hs.ChallengeCompleted
		out.TotalPossible += hs.ChallengeDays
	}
	out.CompletionRate = Percent(out.TotalCompleted, out.TotalPossible)

	slices.SortStableFunc(out.Habits, func(a, b domain.HabitSummary) int {
		switch {
		case a.Stats.ChallengePercent > b.Stats.ChallengePercent:
			return -1
		case a.Stats.ChallengePercent < b.Stats.ChallengePercent:
			return 1
		}
		return 0
	})
	if n := len(out.Habits); n > 0 {
		out.Best = &out.Habits[0]
		out.Worst = &out.Habits[n-1]
	}

	cal := Calendar(habits)
	out.PerfectDays = cal.PerfectDays
	out.AlmostPerfectDays = cal.AlmostPerfectDays
	out.DaysActive = cal.DaysActive
	return out
}

// Calendar scans every entry of every habit and counts perfect,
// almost-perfect and active dates. Perfect means every habit completed;
// almost-perfect means exactly one missing and needs at least two habits.
func Calendar(habits []domain.Habit) domain.CalendarStats {
	perDay := completedPerDay(habits)
	n := len(habits)

	var out domain.CalendarStats
	for _, done := range perDay {
		out.DaysActive++
		switch {
		case n > 0 && done == n:
			out.PerfectDays++
		case n > 1 && done == n-1:
			out.AlmostPerfectDays++
		}
	}
	return out
}

// Weekdays averages the per-date completion ratio by weekday name, as a
// percentage rounded to one decimal. Weekdays with no entries are omitted.
func Weekdays(habits []domain.Habit) map[string]float64 {
	n := len(habits)
	if n == 0 {
		return map[string]float64{}
	}

	type bucket struct {
		sum  float64
		days int
	}
	buckets := make(map[time.Weekday]*bucket)
	for day, done := range completedPerDay(habits) {
		b := buckets[day.Weekday()]
		if b == nil {
			b = &bucket{}
			buckets[day.Weekday()] = b
		}
		b.sum += float64(done) / float64(n)
		b.days++
	}

	out := make(map[string]float64, len(buckets))
	for wd, b := range buckets {
		out[wd.String()] = clampPct(round1(b.sum / float64(b.days) * 100))
	}
	return out
}

// completedPerDay maps every date with at least one entry to the number of
// habits completed on it.
func completedPerDay(habits []domain.Habit) map[time.Time]int {
	perDay := make(map[time.Time]int)
	for _, h := range habits {
		for _, e := range h.Entries {
			d := domain.DateOf(e.Date)
			if _, seen := perDay[d]; !seen {
				perDay[d] = 0
			}
			if e.Completed {
				perDay[d]++
			}
		}
	}
	return perDay
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampPct(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
