package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/habit21/habit21/internal/health"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check storage, catalog and migrations, repairing what it can",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	checker := health.NewChecker(t.DB, t.Achievement, t.Config.Storage.Dir)
	for _, s := range checker.RunAll(cmd.Context()) {
		switch {
		case s.Recovered:
			fmt.Printf("[fixed] %s: %s\n", s.Name, s.Error)
		case s.Healthy:
			fmt.Printf("[ok] %s\n", s.Name)
		default:
			fmt.Printf("[fail] %s: %s\n", s.Name, s.Error)
		}
	}

	if !checker.IsHealthy() {
		return errors.New("some checks failed")
	}
	return nil
}
