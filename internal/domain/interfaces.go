package domain

import "time"

// ─── Collaborator Interfaces ────────────────────────────────────────────────
// The engine never owns storage. Infrastructure implements these; the
// application layer depends on them.

// HabitSource yields a read-only snapshot of a user's habits and entries.
type HabitSource interface {
	LoadHabits(userID string) ([]Habit, error)
}

// AchievementStore persists AchievementRecords.
type AchievementStore interface {
	// UnlockedKeys returns the keys already unlocked for userID.
	UnlockedKeys(userID string) (map[string]bool, error)

	// UnlockAchievement inserts a record; false if it already existed.
	UnlockAchievement(userID, key string, at time.Time) (bool, error)

	// ListAchievements returns every record for userID, oldest unlock first.
	ListAchievements(userID string) ([]AchievementRecord, error)

	// UpdateUnlockedAt rewrites the timestamp of an existing record.
	UpdateUnlockedAt(userID, key string, at time.Time) error

	MarkViewed(userID, key string) error
	MarkNotified(userID, key string) error
	ListUnnotified(userID string) ([]AchievementRecord, error)

	// MigrationApplied and RecordMigration gate one-time startup steps.
	MigrationApplied(name string) (bool, error)
	RecordMigration(name, runID string, at time.Time) error

	ListUserIDs() ([]string, error)
}
