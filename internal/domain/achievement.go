package domain

import "time"

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatMilestones AchievementCategory = "milestones"
	CatStreaks    AchievementCategory = "streaks"
	CatExcellence AchievementCategory = "excellence"
	CatRecovery   AchievementCategory = "recovery"
)

// AllCategories returns the categories in display order.
func AllCategories() []AchievementCategory {
	return []AchievementCategory{CatMilestones, CatStreaks, CatExcellence, CatRecovery}
}

// Goal says which stat a progress bar tracks and where it ends.
type Goal struct {
	Field  StatField `json:"field"`
	Target float64   `json:"target"`
}

// AchievementDef defines a single achievement. Keys are persisted and must
// never be renamed once shipped.
type AchievementDef struct {
	Key         string                    `json:"key"`
	Category    AchievementCategory       `json:"category"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Emoji       string                    `json:"emoji"`
	Predicate   func(AggregateStats) bool `json:"-"`
	Goal        *Goal                     `json:"goal,omitempty"` // nil for compound rules
}

// UnlockEvent is emitted the first time a predicate holds for a user.
type UnlockEvent struct {
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Emoji       string              `json:"emoji"`
	Category    AchievementCategory `json:"category"`
	UnlockedAt  time.Time           `json:"unlocked_at"`
}

// NewUnlockEvent builds the event for def unlocked at t.
func NewUnlockEvent(def AchievementDef, at time.Time) UnlockEvent {
	return UnlockEvent{
		Key:         def.Key,
		Name:        def.Name,
		Description: def.Description,
		Emoji:       def.Emoji,
		Category:    def.Category,
		UnlockedAt:  at,
	}
}

// AchievementRecord is the persisted unlock row, unique per (UserID, Key).
// Viewed and Notified belong to the collaborator; the engine only reads them.
type AchievementRecord struct {
	UserID     string    `json:"user_id"`
	Key        string    `json:"achievement_key"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Viewed     bool      `json:"viewed"`
	Notified   bool      `json:"notified"`
}

// Progress is how close a locked achievement is.
type Progress struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

// UnlockedAchievement is a display row for an earned achievement.
type UnlockedAchievement struct {
	Def    AchievementDef    `json:"achievement"`
	Record AchievementRecord `json:"record"`
}

// LockedAchievement is a display row for an achievement still in progress.
type LockedAchievement struct {
	Def      AchievementDef `json:"achievement"`
	Progress Progress       `json:"progress"`
}

// DateChange reports an unlock date rewritten by a recalculation pass.
type DateChange struct {
	Key string    `json:"key"`
	Old time.Time `json:"old"`
	New time.Time `json:"new"`
}
