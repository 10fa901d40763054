package engagement

import (
	"math"
	"regexp"
	"slices"
	"strconv"

	"github.com/habit21/habit21/internal/domain"
)

// goalPatterns infer a progress goal from a key for rules registered
// without one. Most specific first: "all_habits_streak_7" also ends in
// "streak_7" and must not be read as a max-streak goal.
var goalPatterns = []struct {
	re    *regexp.Regexp
	field domain.StatField
}{
	{regexp.MustCompile(`all_habits_streak_(\d+)$`), domain.FieldMinHabitStreak},
	{regexp.MustCompile(`current_streak_(\d+)$`), domain.FieldCurrentStreak},
	{regexp.MustCompile(`almost_perfect_(\d+)$`), domain.FieldAlmostPerfectDays},
	{regexp.MustCompile(`perfect_days_(\d+)$`), domain.FieldPerfectDays},
	{regexp.MustCompile(`streak_(\d+)$`), domain.FieldMaxStreak},
	{regexp.MustCompile(`habits_(\d+)$`), domain.FieldTotalCompleted},
	{regexp.MustCompile(`active_days_(\d+)$`), domain.FieldDaysActive},
	{regexp.MustCompile(`completion_(\d+)$`), domain.FieldOverallCompletion},
}

// ParseGoal derives a goal from the numeric suffix of key.
func ParseGoal(key string) (domain.Goal, bool) {
	for _, p := range goalPatterns {
		m := p.re.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return domain.Goal{}, false
		}
		return domain.Goal{Field: p.field, Target: float64(n)}, true
	}
	return domain.Goal{}, false
}

// Estimate reports how close s is to unlocking def. Rules with a numeric
// goal report current/target; the rest are 0% or 100% by predicate.
// This is a display heuristic, not a guarantee the predicate holds at 100%.
func Estimate(def domain.AchievementDef, s domain.AggregateStats) domain.Progress {
	goal, ok := goalFor(def)
	if ok {
		if current, known := s.Field(goal.Field); known {
			return domain.Progress{
				Current: current,
				Target:  goal.Target,
				Percent: ProgressPct(current, goal.Target),
			}
		}
	}

	if met, err := holds(def, s); err == nil && met {
		return domain.Progress{Current: 1, Target: 1, Percent: 100}
	}
	return domain.Progress{Current: 0, Target: 1, Percent: 0}
}

// ProgressPct returns min(100, round(current/target*100, 1)).
func ProgressPct(current, target float64) float64 {
	if target <= 0 {
		return 100
	}
	pct := math.Round(current/target*1000) / 10
	return math.Max(0, math.Min(100, pct))
}

// Board splits the engine's rules into unlocked rows (newest first) and
// locked rows with progress. Records for retired keys are ignored.
func (e *Engine) Board(s domain.AggregateStats, records []domain.AchievementRecord) ([]domain.UnlockedAchievement, []domain.LockedAchievement) {
	byKey := make(map[string]domain.AchievementRecord, len(records))
	for _, r := range records {
		byKey[r.Key] = r
	}

	var unlocked []domain.UnlockedAchievement
	var locked []domain.LockedAchievement
	for _, def := range e.defs {
		if rec, ok := byKey[def.Key]; ok {
			unlocked = append(unlocked, domain.UnlockedAchievement{Def: def, Record: rec})
			continue
		}
		locked = append(locked, domain.LockedAchievement{Def: def, Progress: Estimate(def, s)})
	}

	slices.SortStableFunc(unlocked, func(a, b domain.UnlockedAchievement) int {
		return b.Record.UnlockedAt.Compare(a.Record.UnlockedAt)
	})
	return unlocked, locked
}

func goalFor(def domain.AchievementDef) (domain.Goal, bool) {
	if def.Goal != nil {
		return *def.Goal, true
	}
	return ParseGoal(def.Key)
}
