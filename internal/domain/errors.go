package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure: no infrastructure dependency.

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrHabitNotFound      = errors.New("habit not found")
	ErrUnknownAchievement = errors.New("unknown achievement key")
	ErrInvalidDate        = errors.New("invalid date, want YYYY-MM-DD")
	ErrHabitLimit         = errors.New("habit limit reached for this challenge")

	// Raised by the evaluator when a rule predicate panics. The rule is
	// skipped for that pass and retried on the next one.
	ErrPredicatePanic = errors.New("achievement predicate panicked")
)
