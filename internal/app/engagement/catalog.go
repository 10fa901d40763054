package engagement

import "github.com/habit21/habit21/internal/domain"

// ─── Achievement Catalog ────────────────────────────────────────────────────
// 50 achievements across 4 categories. Keys are persisted: never rename or
// renumber a shipped key. Order is the evaluation and display order.

// Catalog returns a fresh copy of every achievement definition.
func Catalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Milestones (18) ──────────────────────────────────────────────────
		threshold("first_habit", domain.CatMilestones, "First Step", "Complete your first habit", "🌱", domain.FieldTotalCompleted, 1),
		threshold("habits_10", domain.CatMilestones, "Getting Going", "Complete 10 habits", "👟", domain.FieldTotalCompleted, 10),
		threshold("habits_25", domain.CatMilestones, "Quarter Century", "Complete 25 habits", "🎯", domain.FieldTotalCompleted, 25),
		threshold("habits_50", domain.CatMilestones, "Half Century", "Complete 50 habits", "⭐", domain.FieldTotalCompleted, 50),
		threshold("habits_100", domain.CatMilestones, "Centurion", "Complete 100 habits", "💯", domain.FieldTotalCompleted, 100),
		threshold("habits_150", domain.CatMilestones, "Habit Builder", "Complete 150 habits", "🧱", domain.FieldTotalCompleted, 150),
		threshold("habits_200", domain.CatMilestones, "Double Century", "Complete 200 habits", "🏗️", domain.FieldTotalCompleted, 200),
		threshold("habits_300", domain.CatMilestones, "Three Hundred Club", "Complete 300 habits", "🏋️", domain.FieldTotalCompleted, 300),
		threshold("habits_500", domain.CatMilestones, "Habit Machine", "Complete 500 habits", "⚙️", domain.FieldTotalCompleted, 500),
		threshold("habits_750", domain.CatMilestones, "Unstoppable", "Complete 750 habits", "🚀", domain.FieldTotalCompleted, 750),
		threshold("habits_1000", domain.CatMilestones, "Thousand Strong", "Complete 1000 habits", "🏆", domain.FieldTotalCompleted, 1000),
		threshold("active_days_3", domain.CatMilestones, "Warming Up", "Track habits on 3 different days", "📅", domain.FieldDaysActive, 3),
		threshold("active_days_7", domain.CatMilestones, "First Week", "Track habits on 7 different days", "🗓️", domain.FieldDaysActive, 7),
		threshold("active_days_14", domain.CatMilestones, "Two Weeks In", "Track habits on 14 different days", "📆", domain.FieldDaysActive, 14),
		threshold("active_days_21", domain.CatMilestones, "Challenge Complete", "Track habits on 21 different days", "🎉", domain.FieldDaysActive, 21),
		threshold("active_days_30", domain.CatMilestones, "Monthly Regular", "Track habits on 30 different days", "🌙", domain.FieldDaysActive, 30),
		threshold("active_days_60", domain.CatMilestones, "Two Months Strong", "Track habits on 60 different days", "🌗", domain.FieldDaysActive, 60),
		threshold("active_days_100", domain.CatMilestones, "Hundred Days", "Track habits on 100 different days", "🌕", domain.FieldDaysActive, 100),

		// ── Streaks (15) ─────────────────────────────────────────────────────
		threshold("streak_3", domain.CatStreaks, "Hat Trick", "Reach a 3-day streak on any habit", "🔥", domain.FieldMaxStreak, 3),
		threshold("streak_5", domain.CatStreaks, "High Five", "Reach a 5-day streak on any habit", "✋", domain.FieldMaxStreak, 5),
		threshold("streak_7", domain.CatStreaks, "Week Warrior", "Reach a 7-day streak on any habit", "⚔️", domain.FieldMaxStreak, 7),
		threshold("streak_10", domain.CatStreaks, "Perfect Ten", "Reach a 10-day streak on any habit", "🎳", domain.FieldMaxStreak, 10),
		threshold("streak_14", domain.CatStreaks, "Fortnight Force", "Reach a 14-day streak on any habit", "💪", domain.FieldMaxStreak, 14),
		threshold("streak_21", domain.CatStreaks, "Habit Formed", "Reach a 21-day streak on any habit", "🧠", domain.FieldMaxStreak, 21),
		threshold("streak_30", domain.CatStreaks, "Monthly Machine", "Reach a 30-day streak on any habit", "🤖", domain.FieldMaxStreak, 30),
		threshold("streak_60", domain.CatStreaks, "Iron Will", "Reach a 60-day streak on any habit", "🛡️", domain.FieldMaxStreak, 60),
		threshold("streak_100", domain.CatStreaks, "Streak Legend", "Reach a 100-day streak on any habit", "🐉", domain.FieldMaxStreak, 100),
		threshold("current_streak_7", domain.CatStreaks, "On Fire", "Hold a live 7-day streak", "🌋", domain.FieldCurrentStreak, 7),
		threshold("current_streak_14", domain.CatStreaks, "Blazing", "Hold a live 14-day streak", "☄️", domain.FieldCurrentStreak, 14),
		threshold("all_habits_streak_3", domain.CatStreaks, "In Sync", "Every habit on a live 3-day streak", "🔗", domain.FieldMinHabitStreak, 3),
		threshold("all_habits_streak_7", domain.CatStreaks, "Full House", "Every habit on a live 7-day streak", "🏠", domain.FieldMinHabitStreak, 7),
		threshold("all_habits_streak_14", domain.CatStreaks, "Clockwork", "Every habit on a live 14-day streak", "⏰", domain.FieldMinHabitStreak, 14),
		threshold("all_habits_streak_21", domain.CatStreaks, "Total Discipline", "Every habit on a live 21-day streak", "👑", domain.FieldMinHabitStreak, 21),

		// ── Excellence (10) ──────────────────────────────────────────────────
		threshold("perfect_days_1", domain.CatExcellence, "Perfect Day", "Complete every habit on one day", "✨", domain.FieldPerfectDays, 1),
		threshold("perfect_days_3", domain.CatExcellence, "Triple Perfect", "Complete every habit on 3 days", "💎", domain.FieldPerfectDays, 3),
		threshold("perfect_days_7", domain.CatExcellence, "Perfect Week", "Complete every habit on 7 days", "🌟", domain.FieldPerfectDays, 7),
		threshold("perfect_days_14", domain.CatExcellence, "Flawless Fortnight", "Complete every habit on 14 days", "🏅", domain.FieldPerfectDays, 14),
		threshold("perfect_days_21", domain.CatExcellence, "Flawless Challenge", "Complete every habit on 21 days", "🥇", domain.FieldPerfectDays, 21),
		threshold("almost_perfect_5", domain.CatExcellence, "So Close", "Miss just one habit on 5 days", "🤏", domain.FieldAlmostPerfectDays, 5),
		{
			Key: "completion_50", Category: domain.CatExcellence, Name: "Halfway There",
			Description: "Reach 50% overall completion after a week", Emoji: "📈",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 7 && s.OverallCompletion >= 50 },
			Goal:      &domain.Goal{Field: domain.FieldOverallCompletion, Target: 50},
		},
		{
			Key: "completion_75", Category: domain.CatExcellence, Name: "High Achiever",
			Description: "Reach 75% overall completion after a week", Emoji: "🎖️",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 7 && s.OverallCompletion >= 75 },
			Goal:      &domain.Goal{Field: domain.FieldOverallCompletion, Target: 75},
		},
		{
			Key: "completion_90", Category: domain.CatExcellence, Name: "Elite",
			Description: "Reach 90% overall completion after a week", Emoji: "🦅",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 7 && s.OverallCompletion >= 90 },
			Goal:      &domain.Goal{Field: domain.FieldOverallCompletion, Target: 90},
		},
		{
			Key: "consistency_king", Category: domain.CatExcellence, Name: "Consistency King",
			Description: "Keep every habit at 80% or better for two weeks", Emoji: "🤴",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 14 && s.WorstHabitCompletion >= 80 },
		},

		// ── Recovery (7) ─────────────────────────────────────────────────────
		{
			Key: "persistent", Category: domain.CatRecovery, Name: "Persistent",
			Description: "Track 7 days without yet holding a 7-day streak", Emoji: "🐢",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 7 && s.CurrentStreak < 7 },
		},
		{
			Key: "comeback_kid", Category: domain.CatRecovery, Name: "Comeback Kid",
			Description: "Start a new streak after losing a 3-day one", Emoji: "🔄",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 10 && s.MaxStreak >= 3 && s.CurrentStreak >= 1 && s.CurrentStreak < s.MaxStreak },
		},
		{
			Key: "never_give_up", Category: domain.CatRecovery, Name: "Never Give Up",
			Description: "Keep tracking for 21 days while under 50% completion", Emoji: "🧗",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 21 && s.OverallCompletion < 50 },
		},
		{
			Key: "almost_there", Category: domain.CatRecovery, Name: "Almost There",
			Description: "Log 3 almost-perfect days before a third perfect one", Emoji: "🎈",
			Predicate: func(s domain.AggregateStats) bool { return s.AlmostPerfectDays >= 3 && s.PerfectDays < 3 },
		},
		{
			Key: "steady_climber", Category: domain.CatRecovery, Name: "Steady Climber",
			Description: "Complete 50 habits while your best habit is under 90%", Emoji: "🪜",
			Predicate: func(s domain.AggregateStats) bool { return s.TotalCompleted >= 50 && s.BestHabitCompletion < 90 },
		},
		{
			Key: "fighter", Category: domain.CatRecovery, Name: "Fighter",
			Description: "Stay active 14 days while your hardest habit is under 30%", Emoji: "🥊",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 14 && s.WorstHabitCompletion < 30 && s.TotalCompleted >= 20 },
		},
		{
			Key: "resilient", Category: domain.CatRecovery, Name: "Resilient",
			Description: "Track 30 days without ever holding a 7-day streak", Emoji: "🌾",
			Predicate: func(s domain.AggregateStats) bool { return s.DaysActive >= 30 && s.MaxStreak < 7 },
		},
	}
}

// Lookup returns the definition registered under key.
func Lookup(key string) (domain.AchievementDef, bool) {
	for _, def := range Catalog() {
		if def.Key == key {
			return def, true
		}
	}
	return domain.AchievementDef{}, false
}

// threshold registers a single-stat rule with its progress goal.
func threshold(key string, cat domain.AchievementCategory, name, desc, emoji string, field domain.StatField, target float64) domain.AchievementDef {
	return domain.AchievementDef{
		Key:         key,
		Category:    cat,
		Name:        name,
		Description: desc,
		Emoji:       emoji,
		Predicate: func(s domain.AggregateStats) bool {
			v, _ := s.Field(field)
			return v >= target
		},
		Goal: &domain.Goal{Field: field, Target: target},
	}
}
