// Package cli implements the habit21 command-line interface using Cobra.
// Each subcommand maps to one tracker capability (toggle, stats, achievements, etc.).
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/habit21/habit21/internal/tracker"
)

var userID string

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", os.Getenv("HABIT21_USER"), "User id (default $HABIT21_USER)")
}

var rootCmd = &cobra.Command{
	Use:   "habit21",
	Short: "habit21: 21-day habit challenge tracker",
	Long: `habit21 tracks daily habits over a 21-day challenge.
Toggle a habit for a day, see your streaks and completion rates, and
unlock achievements as you go.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var errNoUser = errors.New("no user selected: pass --user or set HABIT21_USER")

// requireUser returns the selected user id.
func requireUser() (string, error) {
	if userID == "" {
		return "", errNoUser
	}
	return userID, nil
}

// openTracker loads config and opens the runtime.
func openTracker() (*tracker.Tracker, error) {
	return tracker.New()
}
