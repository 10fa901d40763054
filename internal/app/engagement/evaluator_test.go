package engagement_test

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habit21/habit21/internal/app/engagement"
	"github.com/habit21/habit21/internal/domain"
)

func TestEvaluate_NoHabits(t *testing.T) {
	eng := quietEngine()
	assert.Empty(t, eng.Evaluate(nil, nil, time.Now()))
}

func TestEvaluate_HundredCompletionsFiresOnce(t *testing.T) {
	eng := quietEngine()

	h := domain.Habit{ID: 1, Name: "read", Entries: run("2024-01-01", 100)}
	now := day("2024-04-10").Add(9 * time.Hour)

	first := eng.Evaluate([]domain.Habit{h}, map[string]bool{}, now)
	assert.Contains(t, keysOf(first), "habits_100")

	unlocked := make(map[string]bool)
	for _, ev := range first {
		unlocked[ev.Key] = true
	}

	h.Entries = run("2024-01-01", 105)
	second := eng.Evaluate([]domain.Habit{h}, unlocked, now.AddDate(0, 0, 5))
	for _, ev := range second {
		assert.False(t, unlocked[ev.Key], "%s unlocked twice", ev.Key)
	}
	assert.NotContains(t, keysOf(second), "habits_100")
}

func TestEvaluate_HundredthDayIsUnlockDate(t *testing.T) {
	eng := quietEngine()
	h := domain.Habit{ID: 1, Entries: run("2024-01-01", 105)}

	events := eng.Evaluate([]domain.Habit{h}, nil, day("2024-05-01"))
	i := slices.Index(keysOf(events), "habits_100")
	require.GreaterOrEqual(t, i, 0)

	// 2024-01-01 + 99 days
	assert.Equal(t, time.Date(2024, 4, 9, 23, 59, 59, 0, time.UTC), events[i].UnlockedAt)
}

func TestEvaluate_Idempotent(t *testing.T) {
	eng := quietEngine()
	habits := []domain.Habit{
		{ID: 1, Entries: run("2024-02-01", 30)},
		{ID: 2, Entries: entries("2024-02-01", "2024-02-02!", "2024-02-03")},
	}
	now := day("2024-03-02")

	first := eng.Evaluate(habits, nil, now)
	require.NotEmpty(t, first)

	unlocked := make(map[string]bool)
	for _, ev := range first {
		unlocked[ev.Key] = true
	}
	assert.Empty(t, eng.Evaluate(habits, unlocked, now))
}

func TestEvaluate_CatalogOrder(t *testing.T) {
	eng := quietEngine()
	events := eng.Evaluate([]domain.Habit{{ID: 1, Entries: run("2024-02-01", 30)}}, nil, day("2024-03-02"))

	var order []string
	for _, d := range engagement.Catalog() {
		order = append(order, d.Key)
	}
	prev := -1
	for _, ev := range events {
		i := slices.Index(order, ev.Key)
		assert.Greater(t, i, prev, ev.Key)
		prev = i
	}
}

func TestEvaluate_PanickingRuleIsSkipped(t *testing.T) {
	defs := []domain.AchievementDef{
		{Key: "boom", Category: domain.CatRecovery, Predicate: func(domain.AggregateStats) bool { panic("bad rule") }},
		{Key: "nil_predicate", Category: domain.CatRecovery},
		{Key: "always", Category: domain.CatMilestones, Predicate: func(domain.AggregateStats) bool { return true }},
	}
	eng := quietEngine(engagement.WithDefinitions(defs))

	habits := []domain.Habit{{ID: 1, Entries: entries("2024-01-01")}}
	events := eng.Evaluate(habits, nil, day("2024-01-02"))

	assert.Equal(t, []string{"always"}, keysOf(events))
}

func TestEvaluate_EventCarriesMetadata(t *testing.T) {
	eng := quietEngine()
	events := eng.Evaluate([]domain.Habit{{ID: 1, Entries: entries("2024-01-01")}}, nil, day("2024-01-02"))
	require.NotEmpty(t, events)

	def, _ := engagement.Lookup("first_habit")
	ev := events[0]
	assert.Equal(t, def.Key, ev.Key)
	assert.Equal(t, def.Name, ev.Name)
	assert.Equal(t, def.Description, ev.Description)
	assert.Equal(t, def.Emoji, ev.Emoji)
	assert.Equal(t, def.Category, ev.Category)
}

func TestEvaluate_Concurrent(t *testing.T) {
	eng := quietEngine()
	habits := []domain.Habit{{ID: 1, Entries: run("2024-02-01", 21)}}
	now := day("2024-02-22")
	want := keysOf(eng.Evaluate(habits, nil, now))

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = keysOf(eng.Evaluate(habits, nil, now))
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEngine_Lookup(t *testing.T) {
	eng := quietEngine()
	def, ok := eng.Lookup("streak_7")
	require.True(t, ok)
	assert.Equal(t, "Week Warrior", def.Name)

	_, ok = eng.Lookup("gone")
	assert.False(t, ok)
	assert.Len(t, eng.Definitions(), 50)
}
