// Package metrics provides Prometheus metrics for habit21.
// There is no HTTP surface, so collectors are exported through the
// node-exporter textfile format by WriteTextfile after a CLI run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Evaluation ─────────────────────────────────────────────────────────────

// EvaluationDuration tracks how long one achievement evaluation pass takes.
var EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "habit21",
	Name:      "evaluation_duration_seconds",
	Help:      "Duration of one achievement evaluation pass.",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
})

// AchievementsUnlocked counts unlock events by category.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habit21",
	Name:      "achievements_unlocked_total",
	Help:      "Achievement unlock events emitted by the evaluator.",
}, []string{"category"})

// PredicateFailures counts rule predicates that panicked and were skipped.
var PredicateFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habit21",
	Name:      "predicate_failures_total",
	Help:      "Rule predicates that failed and were skipped for the pass.",
}, []string{"key"})

// ─── Replay ─────────────────────────────────────────────────────────────────

// ReplayCutoffs tracks how many historical cutoffs a date resolution replayed.
var ReplayCutoffs = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "habit21",
	Name:      "replay_cutoffs",
	Help:      "Historical cutoffs replayed to resolve one unlock date.",
	Buckets:   []float64{1, 3, 7, 14, 21, 42, 84, 126},
})

// ReplayFallbacks counts resolutions that found no historical cutoff and used now.
var ReplayFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habit21",
	Name:      "replay_fallbacks_total",
	Help:      "Unlock date resolutions that fell back to the current time.",
})

// ─── Migration ──────────────────────────────────────────────────────────────

// MigrationUnlocks counts achievements unlocked by the retroactive migration.
var MigrationUnlocks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habit21",
	Name:      "migration_unlocks_total",
	Help:      "Achievements unlocked by the retroactive startup migration.",
})

// DatesRecalculated counts unlock dates rewritten by a repair pass.
var DatesRecalculated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habit21",
	Name:      "dates_recalculated_total",
	Help:      "Achievement unlock dates rewritten by recalculation.",
})

// WriteTextfile dumps the default registry to path in text exposition format.
// An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
