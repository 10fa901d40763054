package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/habit21/habit21/internal/domain"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(fixDatesCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Backfill achievements for existing history (runs once)",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var fixDatesCmd = &cobra.Command{
	Use:   "fix-dates",
	Short: "Recompute unlock dates from habit history",
	Long: `Replays each user's history and moves every unlock date to the day the
achievement was first earned. Uses --user when given, otherwise all users.`,
	Args: cobra.NoArgs,
	RunE: runFixDates,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	report, err := t.Achievement.RunRetroactive()
	if err != nil {
		return err
	}
	if report.Skipped {
		fmt.Println("Retroactive achievements already applied.")
		return nil
	}

	users := make([]string, 0, len(report.Unlocked))
	for u := range report.Unlocked {
		users = append(users, u)
	}
	sort.Strings(users)
	for _, u := range users {
		fmt.Printf("  %s: %d unlocked\n", u, report.Unlocked[u])
	}
	fmt.Printf("Migration run %s complete.\n", report.RunID)
	return nil
}

func runFixDates(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	users := []string{userID}
	if userID == "" {
		if users, err = t.DB.ListUserIDs(); err != nil {
			return err
		}
	}

	total := 0
	for _, u := range users {
		changes, err := t.Achievement.RecalculateDates(u)
		if err != nil {
			return fmt.Errorf("user %s: %w", u, err)
		}
		for _, c := range changes {
			fmt.Printf("  %s %-22s %s -> %s\n", u, c.Key,
				c.Old.Format(domain.DateLayout), c.New.Format(domain.DateLayout))
		}
		total += len(changes)
	}
	fmt.Printf("Updated %d unlock dates.\n", total)
	return nil
}
