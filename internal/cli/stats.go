package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/habit21/habit21/internal/app/engagement"
	"github.com/habit21/habit21/internal/domain"
)

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print raw statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks, completion rates and weekday performance",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var weekdayOrder = []string{
	time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(),
	time.Thursday.String(), time.Friday.String(), time.Saturday.String(), time.Sunday.String(),
}

func runStats(cmd *cobra.Command, args []string) error {
	uid, err := requireUser()
	if err != nil {
		return err
	}

	t, err := openTracker()
	if err != nil {
		return err
	}
	defer t.Close()

	sum, err := t.Achievement.Summary(uid)
	if err != nil {
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	return printSummary(os.Stdout, sum)
}

func printSummary(out io.Writer, sum engagement.Summary) error {
	o := sum.Overall
	if len(o.Habits) == 0 {
		fmt.Fprintln(out, "No habits yet. Run 'habit21 habit add <name>'.")
		return nil
	}

	fmt.Fprintf(out, "Overall  %s %5.1f%%  (%d / %d)\n",
		renderBar(o.CompletionRate), o.CompletionRate, o.TotalCompleted, o.TotalPossible)
	fmt.Fprintf(out, "Days active %d · perfect %d · almost perfect %d\n",
		o.DaysActive, o.PerfectDays, o.AlmostPerfectDays)
	if o.Best != nil && o.Worst != nil {
		fmt.Fprintf(out, "Best: %s (%.1f%%)  Worst: %s (%.1f%%)\n",
			o.Best.Habit.Name, o.Best.Stats.ChallengePercent,
			o.Worst.Habit.Name, o.Worst.Stats.ChallengePercent)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HABIT\tSTREAK\tBEST\tTRACKED\tCHALLENGE")
	for _, h := range o.Habits {
		s := h.Stats
		fmt.Fprintf(w, "%s\t%d\t%d\t%d/%d %.1f%%\t%d/%d %.1f%%\n",
			h.Habit.Name, s.CurrentStreak, s.LongestStreak,
			s.TrackedCompleted, s.TrackedTotal, s.TrackedPercent,
			s.ChallengeCompleted, s.ChallengeDays, s.ChallengePercent)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(sum.Window) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Challenge %s  %s\n", renderWindow(sum.Window),
			"(# all done, + some, - none, . not tracked)")
	}

	if len(sum.Weekdays) > 0 {
		fmt.Fprintln(out)
		for _, day := range weekdayOrder {
			pct, ok := sum.Weekdays[day]
			if !ok {
				continue
			}
			fmt.Fprintf(out, "%-9s %s %5.1f%%\n", day, renderBar(pct), pct)
		}
	}
	return nil
}

// renderWindow draws one character per challenge day.
func renderWindow(days []domain.WindowDay) string {
	var b strings.Builder
	for _, d := range days {
		switch {
		case !d.Tracked:
			b.WriteByte('.')
		case d.Habits > 0 && d.Completed == d.Habits:
			b.WriteByte('#')
		case d.Completed > 0:
			b.WriteByte('+')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
