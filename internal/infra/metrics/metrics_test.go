package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatheredNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestEvaluationMetrics(t *testing.T) {
	EvaluationDuration.Observe(0.002)
	AchievementsUnlocked.WithLabelValues("streaks").Inc()
	PredicateFailures.WithLabelValues("broken_rule").Inc()

	names := gatheredNames(t)
	expected := []string{
		"habit21_evaluation_duration_seconds",
		"habit21_achievements_unlocked_total",
		"habit21_predicate_failures_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestReplayAndMigrationMetrics(t *testing.T) {
	ReplayCutoffs.Observe(5)
	ReplayFallbacks.Inc()
	MigrationUnlocks.Add(3)
	DatesRecalculated.Inc()

	names := gatheredNames(t)
	for _, name := range []string{
		"habit21_replay_cutoffs",
		"habit21_replay_fallbacks_total",
		"habit21_migration_unlocks_total",
		"habit21_dates_recalculated_total",
	} {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	MigrationUnlocks.Inc()
	path := filepath.Join(t.TempDir(), "habit21.prom")

	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "habit21_migration_unlocks_total") {
		t.Error("textfile missing habit21_migration_unlocks_total")
	}
}

func TestWriteTextfile_EmptyPathNoop(t *testing.T) {
	if err := WriteTextfile(""); err != nil {
		t.Errorf("WriteTextfile(\"\") error: %v", err)
	}
}
