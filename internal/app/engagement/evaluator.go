package engagement

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/habit21/habit21/internal/app/stats"
	"github.com/habit21/habit21/internal/domain"
	"github.com/habit21/habit21/internal/infra/metrics"
)

// Engine evaluates the achievement rules against a habit snapshot.
// It holds no per-user state; concurrent calls for different users are safe.
// Callers serialise evaluate-then-persist for the same user.
type Engine struct {
	defs   []domain.AchievementDef
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for predicate failures and unlocks.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDefinitions replaces the built-in catalog.
func WithDefinitions(defs []domain.AchievementDef) Option {
	return func(e *Engine) { e.defs = defs }
}

// NewEngine creates an engine over the full catalog.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		defs:   Catalog(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "achievements")
	return e
}

// Definitions returns the rules this engine evaluates, in order.
func (e *Engine) Definitions() []domain.AchievementDef {
	return e.defs
}

// Lookup returns the rule registered under key.
func (e *Engine) Lookup(key string) (domain.AchievementDef, bool) {
	for _, def := range e.defs {
		if def.Key == key {
			return def, true
		}
	}
	return domain.AchievementDef{}, false
}

// Evaluate computes the user's stats as of now and returns an unlock event
// for every rule that is not in unlocked and now holds.
func (e *Engine) Evaluate(habits []domain.Habit, unlocked map[string]bool, now time.Time) []domain.UnlockEvent {
	return e.EvaluateStats(stats.Aggregate(habits, now), habits, unlocked, now)
}

// EvaluateStats is Evaluate with precomputed current stats. habits is only
// used to replay history when resolving unlock dates.
// A panicking predicate is logged and skipped; the rest of the batch still runs.
func (e *Engine) EvaluateStats(current domain.AggregateStats, habits []domain.Habit, unlocked map[string]bool, now time.Time) []domain.UnlockEvent {
	started := time.Now()
	defer func() { metrics.EvaluationDuration.Observe(time.Since(started).Seconds()) }()

	var events []domain.UnlockEvent
	for _, def := range e.defs {
		if unlocked[def.Key] {
			continue
		}

		ok, err := holds(def, current)
		if err != nil {
			metrics.PredicateFailures.WithLabelValues(def.Key).Inc()
			e.logger.Warn("skipping achievement rule", "key", def.Key, "error", err)
			continue
		}
		if !ok {
			continue
		}

		at, _ := e.UnlockDate(def, habits, now)
		events = append(events, domain.NewUnlockEvent(def, at))
		metrics.AchievementsUnlocked.WithLabelValues(string(def.Category)).Inc()
	}
	return events
}

// holds runs def's predicate, converting a panic into ErrPredicatePanic.
func holds(def domain.AchievementDef, s domain.AggregateStats) (ok bool, err error) {
	if def.Predicate == nil {
		return false, nil
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("%w: %s: %v", domain.ErrPredicatePanic, def.Key, r)
		}
	}()
	return def.Predicate(s), nil
}
