package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/habit21/habit21/internal/domain"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate achievements and announce anything not yet shown",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	uid, err := requireUser()
	if err != nil {
		return err
	}

	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	if _, err := t.Achievement.CheckAndUnlock(uid); err != nil {
		return err
	}

	pending, err := t.Achievement.Pending(uid)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No new achievements.")
		return nil
	}

	eng := t.Achievement.Engine()
	var events []domain.UnlockEvent
	for _, rec := range pending {
		def, ok := eng.Lookup(rec.Key)
		if !ok {
			continue
		}
		events = append(events, domain.NewUnlockEvent(def, rec.UnlockedAt))
	}
	printUnlocks(os.Stdout, events)

	for _, ev := range events {
		if err := t.Achievement.MarkNotified(uid, ev.Key); err != nil {
			return err
		}
	}
	return nil
}
