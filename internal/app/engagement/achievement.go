// Package engagement implements the habit21 achievement engine: the rule
// catalog, the evaluator, the retroactive unlock-date resolver, progress
// estimation, and the service that connects them to a store.
package engagement

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/habit21/habit21/internal/app/stats"
	"github.com/habit21/habit21/internal/domain"
	"github.com/habit21/habit21/internal/infra/metrics"
)

// AchievementService runs the engine for one user at a time against a
// habit source and an achievement store. Intended to run synchronously
// after every state change so unlocks are immediate.
type AchievementService struct {
	habits domain.HabitSource
	store  domain.AchievementStore
	engine *Engine
	now    func() time.Time
	logger *slog.Logger

	challengeDays int
}

// NewAchievementService creates an achievement service.
func NewAchievementService(habits domain.HabitSource, store domain.AchievementStore, engine *Engine) *AchievementService {
	return &AchievementService{
		habits: habits,
		store:  store,
		engine: engine,
		now:    time.Now,
		logger: engine.logger,

		challengeDays: stats.DefaultChallengeDays,
	}
}

// SetChallengeDays sets the length of the window reported by Summary.
// Non-positive values keep the default.
func (a *AchievementService) SetChallengeDays(days int) {
	if days > 0 {
		a.challengeDays = days
	}
}

// SetClock overrides the wall clock, for tests and batch replays.
func (a *AchievementService) SetClock(now func() time.Time) {
	a.now = now
}

// Engine returns the underlying rule engine.
func (a *AchievementService) Engine() *Engine {
	return a.engine
}

// Summary is everything the stats page shows for a user.
type Summary struct {
	Overall   domain.OverallStats   `json:"overall"`
	Aggregate domain.AggregateStats `json:"aggregate"`
	Weekdays  map[string]float64    `json:"weekdays"`
	Window    []domain.WindowDay    `json:"window"`
}

// Summary computes the user's statistics as of now.
func (a *AchievementService) Summary(userID string) (Summary, error) {
	habits, err := a.habits.LoadHabits(userID)
	if err != nil {
		return Summary{}, fmt.Errorf("load habits: %w", err)
	}
	now := a.now()
	return Summary{
		Overall:   stats.Overall(habits, now),
		Aggregate: stats.Aggregate(habits, now),
		Weekdays:  stats.Weekdays(habits),
		Window:    stats.Window(habits, a.challengeDays),
	}, nil
}

// CheckAndUnlock evaluates every locked rule and persists the new unlocks.
// Returns only events that were actually inserted, so running it twice in a
// row yields nothing the second time.
func (a *AchievementService) CheckAndUnlock(userID string) ([]domain.UnlockEvent, error) {
	habits, err := a.habits.LoadHabits(userID)
	if err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}
	unlocked, err := a.store.UnlockedKeys(userID)
	if err != nil {
		return nil, fmt.Errorf("unlocked keys: %w", err)
	}

	var persisted []domain.UnlockEvent
	for _, ev := range a.engine.Evaluate(habits, unlocked, a.now()) {
		isNew, err := a.store.UnlockAchievement(userID, ev.Key, ev.UnlockedAt)
		if err != nil {
			return persisted, fmt.Errorf("unlock %s: %w", ev.Key, err)
		}
		if !isNew {
			continue
		}
		a.logger.Info("achievement unlocked", "user", userID, "key", ev.Key,
			"unlocked_at", ev.UnlockedAt.Format(time.RFC3339))
		persisted = append(persisted, ev)
	}
	return persisted, nil
}

// Board returns unlocked achievements with their records and locked ones
// with progress.
func (a *AchievementService) Board(userID string) ([]domain.UnlockedAchievement, []domain.LockedAchievement, error) {
	habits, err := a.habits.LoadHabits(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load habits: %w", err)
	}
	records, err := a.store.ListAchievements(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list achievements: %w", err)
	}
	unlocked, locked := a.engine.Board(stats.Aggregate(habits, a.now()), records)
	return unlocked, locked, nil
}

// RecalculateDates replays history for every stored unlock and rewrites
// dates that land on a different calendar day. Records whose rule no longer
// holds at any historical cutoff keep their date.
func (a *AchievementService) RecalculateDates(userID string) ([]domain.DateChange, error) {
	habits, err := a.habits.LoadHabits(userID)
	if err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}
	records, err := a.store.ListAchievements(userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	now := a.now()
	var changes []domain.DateChange
	for _, rec := range records {
		def, ok := a.engine.Lookup(rec.Key)
		if !ok {
			a.logger.Warn("stored achievement has no definition", "user", userID, "key", rec.Key)
			continue
		}
		at, found := a.engine.UnlockDate(def, habits, now)
		if !found || sameUTCDay(at, rec.UnlockedAt) {
			continue
		}
		if err := a.store.UpdateUnlockedAt(userID, rec.Key, at); err != nil {
			return changes, fmt.Errorf("update %s: %w", rec.Key, err)
		}
		metrics.DatesRecalculated.Inc()
		changes = append(changes, domain.DateChange{Key: rec.Key, Old: rec.UnlockedAt, New: at})
	}
	return changes, nil
}

// Pending returns unlocks the user has not been notified about yet.
func (a *AchievementService) Pending(userID string) ([]domain.AchievementRecord, error) {
	return a.store.ListUnnotified(userID)
}

// MarkNotified records that the unlock notification was shown.
func (a *AchievementService) MarkNotified(userID, key string) error {
	if _, ok := a.engine.Lookup(key); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAchievement, key)
	}
	return a.store.MarkNotified(userID, key)
}

// MarkViewed records that the user opened the achievement.
func (a *AchievementService) MarkViewed(userID, key string) error {
	if _, ok := a.engine.Lookup(key); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAchievement, key)
	}
	return a.store.MarkViewed(userID, key)
}

// TotalCount returns the number of defined achievements.
func (a *AchievementService) TotalCount() int {
	return len(a.engine.defs)
}

// sameUTCDay compares calendar days in UTC, the zone unlock stamps are built in.
func sameUTCDay(a, b time.Time) bool {
	return domain.DateOf(a.UTC()).Equal(domain.DateOf(b.UTC()))
}
