package sqlite

import (
	"time"

	"github.com/habit21/habit21/internal/domain"
)

// ─── Achievements ───────────────────────────────────────────────────────────

// UnlockAchievement records an achievement as unlocked.
// Returns false if already unlocked (idempotent).
func (d *DB) UnlockAchievement(userID, key string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO achievements (user_id, achievement_key, unlocked_at, viewed, notified)
		 VALUES (?, ?, ?, 0, 0)`,
		userID, key, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly unlocked
}

// UnlockedKeys returns the set of keys unlocked by userID.
func (d *DB) UnlockedKeys(userID string) (map[string]bool, error) {
	rows, err := d.db.Query(`SELECT achievement_key FROM achievements WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = true
	}
	return keys, rows.Err()
}

// ListAchievements returns all records for userID, oldest unlock first.
func (d *DB) ListAchievements(userID string) ([]domain.AchievementRecord, error) {
	return d.queryRecords(
		`SELECT user_id, achievement_key, unlocked_at, viewed, notified
		 FROM achievements WHERE user_id = ? ORDER BY unlocked_at, achievement_key`, userID,
	)
}

// ListUnnotified returns records whose unlock has not been announced yet.
func (d *DB) ListUnnotified(userID string) ([]domain.AchievementRecord, error) {
	return d.queryRecords(
		`SELECT user_id, achievement_key, unlocked_at, viewed, notified
		 FROM achievements WHERE user_id = ? AND notified = 0 ORDER BY unlocked_at, achievement_key`, userID,
	)
}

// UpdateUnlockedAt rewrites an unlock timestamp.
func (d *DB) UpdateUnlockedAt(userID, key string, at time.Time) error {
	_, err := d.db.Exec(
		`UPDATE achievements SET unlocked_at = ? WHERE user_id = ? AND achievement_key = ?`,
		at.Unix(), userID, key,
	)
	return err
}

// MarkViewed marks an achievement as opened by the user.
func (d *DB) MarkViewed(userID, key string) error {
	_, err := d.db.Exec(
		`UPDATE achievements SET viewed = 1 WHERE user_id = ? AND achievement_key = ?`, userID, key,
	)
	return err
}

// MarkNotified marks an achievement notification as shown.
func (d *DB) MarkNotified(userID, key string) error {
	_, err := d.db.Exec(
		`UPDATE achievements SET notified = 1 WHERE user_id = ? AND achievement_key = ?`, userID, key,
	)
	return err
}

// UnlockedAchievementCount returns how many achievements userID has unlocked.
func (d *DB) UnlockedAchievementCount(userID string) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM achievements WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// ─── Migrations ─────────────────────────────────────────────────────────────

// MigrationApplied reports whether the named one-time step has run.
func (d *DB) MigrationApplied(name string) (bool, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordMigration marks the named step as applied. Recording twice is a no-op.
func (d *DB) RecordMigration(name, runID string, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO schema_migrations (name, run_id, applied_at) VALUES (?, ?, ?)`,
		name, runID, at.Unix(),
	)
	return err
}

func (d *DB) queryRecords(query string, args ...any) ([]domain.AchievementRecord, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AchievementRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRecord(s scanner) (domain.AchievementRecord, error) {
	var r domain.AchievementRecord
	var unlockedAt int64
	if err := s.Scan(&r.UserID, &r.Key, &unlockedAt, &r.Viewed, &r.Notified); err != nil {
		return r, err
	}
	r.UnlockedAt = time.Unix(unlockedAt, 0).UTC() // unlock stamps are UTC end-of-day
	return r, nil
}
