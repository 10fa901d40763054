package engagement_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habit21/habit21/internal/app/engagement"
	"github.com/habit21/habit21/internal/domain"
	"github.com/habit21/habit21/internal/infra/sqlite"
)

var testNow = time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testService(t *testing.T, db *sqlite.DB) *engagement.AchievementService {
	t.Helper()
	svc := engagement.NewAchievementService(db, db, quietEngine())
	svc.SetClock(func() time.Time { return testNow })
	return svc
}

// seedUser creates a user with one habit completed on 2024-01-01..03.
func seedUser(t *testing.T, db *sqlite.DB, name string) string {
	t.Helper()
	u, err := db.CreateUser(name)
	require.NoError(t, err)
	h, err := db.CreateHabit(u.ID, "read")
	require.NoError(t, err)
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		require.NoError(t, db.SetEntry(h.ID, day(d), true))
	}
	return u.ID
}

func TestAchievement_CheckAndUnlock(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")

	events, err := svc.CheckAndUnlock(uid)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"first_habit", "active_days_3", "streak_3",
		"all_habits_streak_3", "perfect_days_1", "perfect_days_3",
	}, keysOf(events))

	recs, err := db.ListAchievements(uid)
	require.NoError(t, err)
	require.Len(t, recs, 6)
	assert.True(t, recs[0].UnlockedAt.Equal(time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)))
}

func TestAchievement_Idempotent(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")

	_, err := svc.CheckAndUnlock(uid)
	require.NoError(t, err)

	again, err := svc.CheckAndUnlock(uid)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestAchievement_UnknownUser(t *testing.T) {
	svc := testService(t, testDB(t))

	_, err := svc.CheckAndUnlock("ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, _, err = svc.Board("ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAchievement_Summary(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")

	sum, err := svc.Summary(uid)
	require.NoError(t, err)
	assert.Equal(t, 75.0, sum.Overall.CompletionRate, "3 of 4 challenge days")
	assert.Equal(t, 3, sum.Aggregate.CurrentStreak)
	assert.Len(t, sum.Weekdays, 3)
}

func TestAchievement_Board(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")
	_, err := svc.CheckAndUnlock(uid)
	require.NoError(t, err)

	unlocked, locked, err := svc.Board(uid)
	require.NoError(t, err)
	assert.Len(t, unlocked, 6)
	assert.Len(t, locked, 44)
	assert.Equal(t, 50, svc.TotalCount())
}

func TestAchievement_PendingAndFlags(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")
	_, err := svc.CheckAndUnlock(uid)
	require.NoError(t, err)

	pending, err := svc.Pending(uid)
	require.NoError(t, err)
	assert.Len(t, pending, 6)

	require.NoError(t, svc.MarkNotified(uid, "first_habit"))
	require.NoError(t, svc.MarkViewed(uid, "streak_3"))

	pending, err = svc.Pending(uid)
	require.NoError(t, err)
	assert.Len(t, pending, 5)

	assert.ErrorIs(t, svc.MarkNotified(uid, "nope"), domain.ErrUnknownAchievement)
	assert.ErrorIs(t, svc.MarkViewed(uid, "nope"), domain.ErrUnknownAchievement)
}

func TestAchievement_RecalculateDates(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")
	_, err := svc.CheckAndUnlock(uid)
	require.NoError(t, err)

	// Simulate a record stamped with the time it was detected.
	require.NoError(t, db.UpdateUnlockedAt(uid, "first_habit", testNow))

	changes, err := svc.RecalculateDates(uid)
	require.NoError(t, err)
	require.Len(t, changes, 1, "records without a historical cutoff keep their date")
	assert.Equal(t, "first_habit", changes[0].Key)
	assert.True(t, changes[0].New.Equal(time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)))

	changes, err = svc.RecalculateDates(uid)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestAchievement_RecalculateSkipsRetiredKeys(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")

	_, err := db.UnlockAchievement(uid, "retired_key", testNow)
	require.NoError(t, err)

	changes, err := svc.RecalculateDates(uid)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

// ─── Retroactive migration ──────────────────────────────────────────────────

func TestRunRetroactive(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	ada := seedUser(t, db, "ada")
	bob, err := db.CreateUser("bob")
	require.NoError(t, err)

	report, err := svc.RunRetroactive()
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, map[string]int{ada: 6, bob.ID: 0}, report.Unlocked)

	// Historic unlocks are not announced.
	pending, err := svc.Pending(ada)
	require.NoError(t, err)
	assert.Empty(t, pending)

	applied, err := db.MigrationApplied(engagement.RetroactiveMigration)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestRunRetroactive_OnlyOnce(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)

	_, err := svc.RunRetroactive()
	require.NoError(t, err)

	// A user created afterwards is handled by regular checks, not the migration.
	uid := seedUser(t, db, "late")
	report, err := svc.RunRetroactive()
	require.NoError(t, err)
	assert.True(t, report.Skipped)

	keys, err := db.UnlockedKeys(uid)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestAchievement_RecalculateDates_LocalZoneEastOfUTC(t *testing.T) {
	old := time.Local
	time.Local = time.FixedZone("JST", 9*3600)
	t.Cleanup(func() { time.Local = old })

	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")
	_, err := svc.CheckAndUnlock(uid)
	require.NoError(t, err)

	for pass := 0; pass < 2; pass++ {
		changes, err := svc.RecalculateDates(uid)
		require.NoError(t, err)
		assert.Empty(t, changes, "pass %d", pass)
	}

	recs, err := db.ListAchievements(uid)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.Equal(t, time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC), recs[0].UnlockedAt)
}

func TestAchievement_SummaryWindow(t *testing.T) {
	db := testDB(t)
	svc := testService(t, db)
	uid := seedUser(t, db, "ada")

	sum, err := svc.Summary(uid)
	require.NoError(t, err)
	require.Len(t, sum.Window, 21)
	assert.True(t, sum.Window[2].Tracked)
	assert.False(t, sum.Window[3].Tracked)

	svc.SetChallengeDays(30)
	sum, err = svc.Summary(uid)
	require.NoError(t, err)
	assert.Len(t, sum.Window, 30)

	svc.SetChallengeDays(0)
	sum, err = svc.Summary(uid)
	require.NoError(t, err)
	assert.Len(t, sum.Window, 30, "non-positive days keep the previous length")
}

// flakyStore fails MarkNotified while failNotify is set.
type flakyStore struct {
	*sqlite.DB
	failNotify bool
}

func (s *flakyStore) MarkNotified(userID, key string) error {
	if s.failNotify {
		return errors.New("disk full")
	}
	return s.DB.MarkNotified(userID, key)
}

func TestRunRetroactive_ResumesAfterNotifyFailure(t *testing.T) {
	db := testDB(t)
	store := &flakyStore{DB: db, failNotify: true}
	svc := engagement.NewAchievementService(db, store, quietEngine())
	svc.SetClock(func() time.Time { return testNow })
	uid := seedUser(t, db, "ada")

	_, err := svc.RunRetroactive()
	require.Error(t, err)

	// Unlocks were stored but not silenced; the migration is still pending.
	pending, err := svc.Pending(uid)
	require.NoError(t, err)
	require.Len(t, pending, 6)

	store.failNotify = false
	report, err := svc.RunRetroactive()
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 0, report.Unlocked[uid], "nothing new to unlock on rerun")

	pending, err = svc.Pending(uid)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
