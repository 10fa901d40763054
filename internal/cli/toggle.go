package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/habit21/habit21/internal/domain"
)

func init() {
	toggleCmd.Flags().StringVarP(&toggleDate, "date", "d", "", "Day to toggle, YYYY-MM-DD (default today)")
	rootCmd.AddCommand(toggleCmd)
}

var toggleDate string

var toggleCmd = &cobra.Command{
	Use:   "toggle HABIT_ID",
	Short: "Flip a habit's completion for a day and check achievements",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	habitID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("habit id %q: %w", args[0], domain.ErrHabitNotFound)
	}

	day := domain.DateOf(time.Now())
	if toggleDate != "" {
		if day, err = domain.ParseDate(toggleDate); err != nil {
			return err
		}
	}

	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	owner, err := t.DB.HabitOwner(habitID)
	if err != nil {
		return err
	}
	if userID != "" && owner != userID {
		return fmt.Errorf("%w: %d", domain.ErrHabitNotFound, habitID)
	}

	done, err := t.DB.ToggleEntry(habitID, day)
	if err != nil {
		return err
	}
	state := "not done"
	if done {
		state = "done"
	}
	fmt.Printf("Habit #%d on %s: %s\n", habitID, day.Format(domain.DateLayout), state)

	// Evaluate synchronously so unlocks print with this toggle.
	events, err := t.Achievement.CheckAndUnlock(owner)
	if err != nil {
		return err
	}
	printUnlocks(os.Stdout, events)
	for _, ev := range events {
		if err := t.Achievement.MarkNotified(owner, ev.Key); err != nil {
			return err
		}
	}
	return nil
}

// printUnlocks announces freshly unlocked achievements.
func printUnlocks(w io.Writer, events []domain.UnlockEvent) {
	for _, ev := range events {
		fmt.Fprintf(w, "%s Achievement unlocked: %s (%s)\n", ev.Emoji, ev.Name, ev.Description)
	}
}
