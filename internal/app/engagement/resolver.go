package engagement

import (
	"time"

	"github.com/habit21/habit21/internal/app/stats"
	"github.com/habit21/habit21/internal/domain"
	"github.com/habit21/habit21/internal/infra/metrics"
)

// UnlockDate reconstructs when def first became true. It replays the
// aggregate at every distinct entry date, oldest first, and returns the end
// of the first day on which the predicate holds. The second result is false
// when no historical day qualifies and now was returned instead.
//
// Cost is O(active days × entries) and is paid once per unlock.
func (e *Engine) UnlockDate(def domain.AchievementDef, habits []domain.Habit, now time.Time) (time.Time, bool) {
	dates := stats.ActiveDates(habits)

	for i, cutoff := range dates {
		ok, err := holds(def, stats.AggregateAsOf(habits, cutoff))
		if err != nil {
			e.logger.Debug("replay predicate failed", "key", def.Key, "cutoff", cutoff.Format(domain.DateLayout), "error", err)
			continue
		}
		if !ok {
			continue
		}

		metrics.ReplayCutoffs.Observe(float64(i + 1))
		at := domain.EndOfDay(cutoff)
		if !domain.DateOf(cutoff).Before(domain.DateOf(now)) {
			// entries dated today: never stamp an unlock in the future
			at = now
		}
		return at, true
	}

	metrics.ReplayCutoffs.Observe(float64(len(dates)))
	metrics.ReplayFallbacks.Inc()
	return now, false
}
