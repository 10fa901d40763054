// Package domain holds the pure types shared by the habit21 engine and its
// storage collaborator. Nothing here touches infrastructure.
package domain

import "time"

// ─── Habits ─────────────────────────────────────────────────────────────────

// CompletionRecord is one day's outcome for a habit.
// Storage guarantees at most one record per (habit, date).
type CompletionRecord struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// Habit is an immutable snapshot of a tracked habit and its log.
type Habit struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Position  int                `json:"position"`
	CreatedAt time.Time          `json:"created_at"`
	Entries   []CompletionRecord `json:"entries"`
}

// CompletedCount returns how many entries are marked completed.
func (h Habit) CompletedCount() int {
	n := 0
	for _, e := range h.Entries {
		if e.Completed {
			n++
		}
	}
	return n
}

// User owns a set of habits.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
