package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/habit21/habit21/internal/domain"
)

func init() {
	achievementsCmd.AddCommand(achievementsViewCmd)
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show unlocked achievements and progress on the rest",
	Args:    cobra.NoArgs,
	RunE:    runAchievements,
}

var achievementsViewCmd = &cobra.Command{
	Use:   "view KEY",
	Short: "Show one achievement and mark it as viewed",
	Args:  cobra.ExactArgs(1),
	RunE:  runAchievementsView,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	uid, err := requireUser()
	if err != nil {
		return err
	}

	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	unlocked, locked, err := t.Achievement.Board(uid)
	if err != nil {
		return err
	}
	printBoard(os.Stdout, unlocked, locked, t.Achievement.TotalCount())
	return nil
}

func printBoard(out io.Writer, unlocked []domain.UnlockedAchievement, locked []domain.LockedAchievement, total int) {
	fmt.Fprintf(out, "Unlocked %d / %d\n", len(unlocked), total)
	for _, u := range unlocked {
		marker := " "
		if !u.Record.Viewed {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %s %-22s %s\n", marker, u.Def.Emoji, u.Def.Name,
			u.Record.UnlockedAt.Format(domain.DateLayout))
	}

	if len(locked) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "In progress")
	for _, l := range locked {
		p := l.Progress
		fmt.Fprintf(out, "   %s %-22s %s %5.1f%%  %s/%s\n", l.Def.Emoji, l.Def.Name,
			renderBar(p.Percent), p.Percent, formatAmount(p.Current), formatAmount(p.Target))
	}
}

func runAchievementsView(cmd *cobra.Command, args []string) error {
	uid, err := requireUser()
	if err != nil {
		return err
	}

	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	def, ok := t.Achievement.Engine().Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAchievement, args[0])
	}
	fmt.Printf("%s %s [%s]\n%s\n", def.Emoji, def.Name, def.Category, def.Description)

	return t.Achievement.MarkViewed(uid, def.Key)
}
