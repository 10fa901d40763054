// Package health runs the habit21 self-checks behind `habit21 doctor`.
package health

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/habit21/habit21/internal/app/engagement"
	"github.com/habit21/habit21/internal/infra/sqlite"
)

// Check defines a single health check with optional recovery action.
type Check struct {
	Name      string
	CheckFn   func(ctx context.Context) error
	RecoverFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Recovered bool      `json:"recovered,omitempty"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs health checks with auto-recovery.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
}

// NewChecker creates a health checker with the standard 4 checks.
func NewChecker(db *sqlite.DB, svc *engagement.AchievementService, storageDir string) *Checker {
	return &Checker{
		checks: []Check{
			{
				Name: "sqlite",
				CheckFn: func(ctx context.Context) error {
					return db.Ping()
				},
			},
			{
				Name: "storage_dir",
				CheckFn: func(ctx context.Context) error {
					return checkStorageDir(storageDir)
				},
			},
			{
				Name: "catalog",
				CheckFn: func(ctx context.Context) error {
					return checkCatalog(svc.Engine())
				},
			},
			{
				Name: "retroactive_migration",
				CheckFn: func(ctx context.Context) error {
					applied, err := db.MigrationApplied(engagement.RetroactiveMigration)
					if err != nil {
						return err
					}
					if !applied {
						return fmt.Errorf("%s not applied", engagement.RetroactiveMigration)
					}
					return nil
				},
				RecoverFn: func(ctx context.Context) error {
					_, err := svc.RunRetroactive()
					return err
				},
			},
		},
	}
}

// RunAll runs every check once, attempting recovery for failures, and
// stores the results.
func (c *Checker) RunAll(ctx context.Context) []Status {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{
			Name:      check.Name,
			CheckedAt: time.Now(),
		}
		if err := check.CheckFn(ctx); err != nil {
			s.Error = err.Error()
			// Attempt recovery, then re-check
			if check.RecoverFn != nil && check.RecoverFn(ctx) == nil && check.CheckFn(ctx) == nil {
				s.Healthy = true
				s.Recovered = true
			}
		} else {
			s.Healthy = true
		}
		statuses[i] = s
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()
	return c.Statuses()
}

// Statuses returns the latest health check results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Status, len(c.statuses))
	copy(result, c.statuses)
	return result
}

// IsHealthy returns true if all checks pass.
func (c *Checker) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}

// ─── Check Implementations ──────────────────────────────────────────────────

func checkStorageDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("check storage dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	tmp, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("storage dir not writable: %w", err)
	}
	tmp.Close()
	return os.Remove(tmp.Name())
}

// checkCatalog verifies keys are unique and that explicit goals agree with
// the key-derived ones.
func checkCatalog(eng *engagement.Engine) error {
	seen := make(map[string]bool)
	for _, def := range eng.Definitions() {
		if seen[def.Key] {
			return fmt.Errorf("duplicate achievement key %q", def.Key)
		}
		seen[def.Key] = true

		if def.Predicate == nil {
			return fmt.Errorf("achievement %q has no predicate", def.Key)
		}
		if def.Goal == nil {
			continue
		}
		if g, ok := engagement.ParseGoal(def.Key); ok && g != *def.Goal {
			return fmt.Errorf("achievement %q: goal %s>=%g disagrees with key", def.Key, def.Goal.Field, def.Goal.Target)
		}
	}
	return nil
}
