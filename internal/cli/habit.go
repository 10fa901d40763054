package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	habitCmd.AddCommand(habitAddCmd, habitListCmd)
	rootCmd.AddCommand(habitCmd)
}

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage the habits of the current user",
}

var habitAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a habit to the challenge",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitAdd,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with their completed count",
	Args:    cobra.NoArgs,
	RunE:    runHabitList,
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	uid, err := requireUser()
	if err != nil {
		return err
	}

	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	h, err := t.AddHabit(uid, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Added habit #%d %s\n", h.ID, h.Name)
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	uid, err := requireUser()
	if err != nil {
		return err
	}

	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	habits, err := t.DB.LoadHabits(uid)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Run 'habit21 habit add <name>'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDONE\tENTRIES")
	for _, h := range habits {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", h.ID, h.Name, h.CompletedCount(), len(h.Entries))
	}
	return w.Flush()
}
