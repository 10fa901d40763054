package tracker

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/habit21/habit21/internal/app/engagement"
	"github.com/habit21/habit21/internal/domain"
	"github.com/habit21/habit21/internal/infra/metrics"
	"github.com/habit21/habit21/internal/infra/sqlite"
)

// Tracker is the habit21 runtime. It wires together all services.
type Tracker struct {
	Config      Config
	DB          *sqlite.DB
	Achievement *engagement.AchievementService
	Logger      *slog.Logger
}

// New creates a Tracker from the config file.
func New() (*Tracker, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Tracker with the given configuration.
func NewWithConfig(cfg Config) (*Tracker, error) {
	logger := NewLogger(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	// Open SQLite
	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	engine := engagement.NewEngine(engagement.WithLogger(logger))
	svc := engagement.NewAchievementService(db, db, engine)
	svc.SetChallengeDays(cfg.Challenge.Days)
	t := &Tracker{
		Config:      cfg,
		DB:          db,
		Achievement: svc,
		Logger:      logger,
	}

	if cfg.Migration.RetroactiveOnStart {
		if _, err := t.Achievement.RunRetroactive(); err != nil {
			db.Close()
			return nil, fmt.Errorf("retroactive achievements: %w", err)
		}
	}

	return t, nil
}

// AddHabit creates a habit, enforcing the per-challenge habit limit.
func (t *Tracker) AddHabit(userID, name string) (domain.Habit, error) {
	n, err := t.DB.CountHabits(userID)
	if err != nil {
		return domain.Habit{}, err
	}
	if limit := t.Config.Challenge.Habits; limit > 0 && n >= limit {
		return domain.Habit{}, fmt.Errorf("%w (%d)", domain.ErrHabitLimit, limit)
	}
	return t.DB.CreateHabit(userID, name)
}

// Close flushes metrics and shuts down the database.
func (t *Tracker) Close() {
	if err := metrics.WriteTextfile(t.Config.Metrics.Textfile); err != nil {
		t.Logger.Warn("write metrics textfile", "path", t.Config.Metrics.Textfile, "err", err)
	}
	if t.DB != nil {
		_ = t.DB.Close()
	}
}
