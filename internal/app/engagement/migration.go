package engagement

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/habit21/habit21/internal/infra/metrics"
)

// RetroactiveMigration names the one-time backfill of achievements for
// users whose history predates the achievement engine.
const RetroactiveMigration = "retroactive_achievements_v1"

// MigrationReport summarises a RunRetroactive call.
type MigrationReport struct {
	RunID    string         `json:"run_id"`
	Skipped  bool           `json:"skipped"`
	Unlocked map[string]int `json:"unlocked"` // user id → count
}

// RunRetroactive backfills achievements for every user, once. Backfilled
// unlocks are marked notified so old history is not announced as new.
// If any user fails the migration is not recorded and reruns next time;
// already-inserted unlocks are kept and skipped on rerun.
func (a *AchievementService) RunRetroactive() (MigrationReport, error) {
	report := MigrationReport{Unlocked: map[string]int{}}

	applied, err := a.store.MigrationApplied(RetroactiveMigration)
	if err != nil {
		return report, fmt.Errorf("check migration: %w", err)
	}
	if applied {
		report.Skipped = true
		return report, nil
	}

	report.RunID = uuid.NewString()
	log := a.logger.With("run", report.RunID, "migration", RetroactiveMigration)

	users, err := a.store.ListUserIDs()
	if err != nil {
		return report, fmt.Errorf("list users: %w", err)
	}

	for _, userID := range users {
		events, err := a.CheckAndUnlock(userID)
		if err != nil {
			return report, fmt.Errorf("user %s: %w", userID, err)
		}
		// Silence every pending record, including ones left over by an
		// earlier run that stopped between unlocking and marking.
		pending, err := a.store.ListUnnotified(userID)
		if err != nil {
			return report, fmt.Errorf("user %s: list unnotified: %w", userID, err)
		}
		for _, rec := range pending {
			if err := a.store.MarkNotified(userID, rec.Key); err != nil {
				return report, fmt.Errorf("user %s: mark notified %s: %w", userID, rec.Key, err)
			}
		}
		report.Unlocked[userID] = len(events)
		metrics.MigrationUnlocks.Add(float64(len(events)))
		log.Info("retroactive achievements", "user", userID, "unlocked", len(events))
	}

	if err := a.store.RecordMigration(RetroactiveMigration, report.RunID, a.now()); err != nil {
		return report, fmt.Errorf("record migration: %w", err)
	}
	log.Info("migration complete", "users", len(users))
	return report, nil
}
