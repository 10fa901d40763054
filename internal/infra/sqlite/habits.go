package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/habit21/habit21/internal/domain"
)

// ─── Users ──────────────────────────────────────────────────────────────────

// CreateUser inserts a user with a fresh random id.
func (d *DB) CreateUser(name string) (domain.User, error) {
	u := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().Truncate(time.Second),
	}
	_, err := d.db.Exec(
		`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
		u.ID, u.Name, u.CreatedAt.Unix(),
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// GetUser retrieves a user by id. Returns ErrUserNotFound if absent.
func (d *DB) GetUser(id string) (domain.User, error) {
	var u domain.User
	var createdAt int64
	err := d.db.QueryRow(`SELECT id, name, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	if err != nil {
		return u, err
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	return u, nil
}

// ListUsers returns all users, oldest first.
func (d *DB) ListUsers() ([]domain.User, error) {
	rows, err := d.db.Query(`SELECT id, name, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var createdAt int64
		if err := rows.Scan(&u.ID, &u.Name, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt = time.Unix(createdAt, 0)
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListUserIDs returns every user id, oldest first.
func (d *DB) ListUserIDs() ([]string, error) {
	users, err := d.ListUsers()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids, nil
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// CreateHabit appends a habit to the user's list.
func (d *DB) CreateHabit(userID, name string) (domain.Habit, error) {
	if _, err := d.GetUser(userID); err != nil {
		return domain.Habit{}, err
	}

	var position int
	err := d.db.QueryRow(
		`SELECT COALESCE(MAX(position), 0) + 1 FROM habits WHERE user_id = ?`, userID,
	).Scan(&position)
	if err != nil {
		return domain.Habit{}, err
	}

	h := domain.Habit{Name: name, Position: position, CreatedAt: time.Now().Truncate(time.Second)}
	result, err := d.db.Exec(
		`INSERT INTO habits (user_id, name, position, created_at) VALUES (?, ?, ?, ?)`,
		userID, name, position, h.CreatedAt.Unix(),
	)
	if err != nil {
		return domain.Habit{}, err
	}
	h.ID, err = result.LastInsertId()
	return h, err
}

// CountHabits returns how many habits the user has.
func (d *DB) CountHabits(userID string) (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM habits WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// HabitOwner returns the user id that owns habitID.
func (d *DB) HabitOwner(habitID int64) (string, error) {
	var userID string
	err := d.db.QueryRow(`SELECT user_id FROM habits WHERE id = ?`, habitID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %d", domain.ErrHabitNotFound, habitID)
	}
	return userID, err
}

// ─── Entries ────────────────────────────────────────────────────────────────

// SetEntry records the outcome of habitID on date, replacing any previous one.
func (d *DB) SetEntry(habitID int64, date time.Time, completed bool) error {
	_, err := d.db.Exec(
		`INSERT INTO habit_entries (habit_id, date, completed) VALUES (?, ?, ?)
		 ON CONFLICT(habit_id, date) DO UPDATE SET completed=excluded.completed`,
		habitID, domain.DateOf(date).Format(domain.DateLayout), completed,
	)
	return err
}

// ToggleEntry flips the entry for habitID on date. A missing entry becomes
// completed. Returns the new state.
func (d *DB) ToggleEntry(habitID int64, date time.Time) (bool, error) {
	if _, err := d.HabitOwner(habitID); err != nil {
		return false, err
	}

	day := domain.DateOf(date).Format(domain.DateLayout)
	var completed bool
	err := d.db.QueryRow(
		`SELECT completed FROM habit_entries WHERE habit_id = ? AND date = ?`, habitID, day,
	).Scan(&completed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		completed = true
	case err != nil:
		return false, err
	default:
		completed = !completed
	}

	if err := d.SetEntry(habitID, date, completed); err != nil {
		return false, err
	}
	return completed, nil
}

// LoadHabits returns a snapshot of the user's habits ordered by position,
// each with its entries ordered by date.
func (d *DB) LoadHabits(userID string) ([]domain.Habit, error) {
	if _, err := d.GetUser(userID); err != nil {
		return nil, err
	}

	rows, err := d.db.Query(
		`SELECT id, name, position, created_at FROM habits WHERE user_id = ? ORDER BY position, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	index := make(map[int64]int)
	for rows.Next() {
		var h domain.Habit
		var createdAt int64
		if err := rows.Scan(&h.ID, &h.Name, &h.Position, &createdAt); err != nil {
			return nil, err
		}
		h.CreatedAt = time.Unix(createdAt, 0)
		index[h.ID] = len(habits)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries, err := d.db.Query(
		`SELECT e.habit_id, e.date, e.completed
		 FROM habit_entries e JOIN habits h ON h.id = e.habit_id
		 WHERE h.user_id = ? ORDER BY e.date, e.habit_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer entries.Close()

	for entries.Next() {
		var habitID int64
		var day string
		var rec domain.CompletionRecord
		if err := entries.Scan(&habitID, &day, &rec.Completed); err != nil {
			return nil, err
		}
		if rec.Date, err = domain.ParseDate(day); err != nil {
			return nil, fmt.Errorf("habit %d: %w", habitID, err)
		}
		i := index[habitID]
		habits[i].Entries = append(habits[i].Entries, rec)
	}
	return habits, entries.Err()
}
