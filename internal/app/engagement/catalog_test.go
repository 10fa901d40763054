package engagement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habit21/habit21/internal/app/engagement"
	"github.com/habit21/habit21/internal/domain"
)

func TestCatalog_Shape(t *testing.T) {
	defs := engagement.Catalog()
	require.Len(t, defs, 50)

	seen := make(map[string]bool)
	counts := make(map[domain.AchievementCategory]int)
	for _, d := range defs {
		assert.False(t, seen[d.Key], "duplicate key %s", d.Key)
		seen[d.Key] = true
		counts[d.Category]++

		assert.NotEmpty(t, d.Name, d.Key)
		assert.NotEmpty(t, d.Description, d.Key)
		assert.NotEmpty(t, d.Emoji, d.Key)
		assert.NotNil(t, d.Predicate, d.Key)
	}

	assert.Equal(t, map[domain.AchievementCategory]int{
		domain.CatMilestones: 18,
		domain.CatStreaks:    15,
		domain.CatExcellence: 10,
		domain.CatRecovery:   7,
	}, counts)
}

func TestCatalog_GroupedInCategoryOrder(t *testing.T) {
	order := map[domain.AchievementCategory]int{}
	for i, c := range domain.AllCategories() {
		order[c] = i
	}

	prev := 0
	for _, d := range engagement.Catalog() {
		assert.GreaterOrEqual(t, order[d.Category], prev, d.Key)
		prev = order[d.Category]
	}
}

func TestCatalog_FreshCopy(t *testing.T) {
	defs := engagement.Catalog()
	defs[0].Key = "mutated"

	assert.Equal(t, "first_habit", engagement.Catalog()[0].Key)
}

func TestCatalog_GoalsMatchKeys(t *testing.T) {
	for _, d := range engagement.Catalog() {
		parsed, ok := engagement.ParseGoal(d.Key)
		if d.Goal == nil {
			assert.False(t, ok, "%s has no goal but its key parses", d.Key)
			continue
		}
		if !ok {
			continue // e.g. first_habit
		}
		assert.Equal(t, *d.Goal, parsed, d.Key)
	}
}

func TestCatalog_ThresholdBoundary(t *testing.T) {
	def, ok := engagement.Lookup("habits_100")
	require.True(t, ok)

	assert.False(t, def.Predicate(domain.AggregateStats{TotalCompleted: 99}))
	assert.True(t, def.Predicate(domain.AggregateStats{TotalCompleted: 100}))
}

func TestCatalog_RecoveryBoundaries(t *testing.T) {
	tests := []struct {
		key  string
		s    domain.AggregateStats
		want bool
	}{
		{"persistent", domain.AggregateStats{DaysActive: 7, CurrentStreak: 6}, true},
		{"persistent", domain.AggregateStats{DaysActive: 7, CurrentStreak: 7}, false},
		{"persistent", domain.AggregateStats{DaysActive: 6, CurrentStreak: 0}, false},
		{"comeback_kid", domain.AggregateStats{DaysActive: 10, MaxStreak: 3, CurrentStreak: 1}, true},
		{"comeback_kid", domain.AggregateStats{DaysActive: 10, MaxStreak: 3, CurrentStreak: 3}, false},
		{"comeback_kid", domain.AggregateStats{DaysActive: 10, MaxStreak: 3, CurrentStreak: 0}, false},
		{"never_give_up", domain.AggregateStats{DaysActive: 21, OverallCompletion: 49.9}, true},
		{"never_give_up", domain.AggregateStats{DaysActive: 21, OverallCompletion: 50}, false},
		{"almost_there", domain.AggregateStats{AlmostPerfectDays: 3, PerfectDays: 2}, true},
		{"almost_there", domain.AggregateStats{AlmostPerfectDays: 3, PerfectDays: 3}, false},
		{"steady_climber", domain.AggregateStats{TotalCompleted: 50, BestHabitCompletion: 89.9}, true},
		{"fighter", domain.AggregateStats{DaysActive: 14, WorstHabitCompletion: 29.9, TotalCompleted: 20}, true},
		{"fighter", domain.AggregateStats{DaysActive: 14, WorstHabitCompletion: 29.9, TotalCompleted: 19}, false},
		{"resilient", domain.AggregateStats{DaysActive: 30, MaxStreak: 6}, true},
		{"resilient", domain.AggregateStats{DaysActive: 30, MaxStreak: 7}, false},
		{"consistency_king", domain.AggregateStats{DaysActive: 14, WorstHabitCompletion: 80}, true},
		{"completion_90", domain.AggregateStats{DaysActive: 6, OverallCompletion: 100}, false},
	}

	for _, tt := range tests {
		def, ok := engagement.Lookup(tt.key)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.want, def.Predicate(tt.s), "%s %+v", tt.key, tt.s)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := engagement.Lookup("no_such_key")
	assert.False(t, ok)
}
