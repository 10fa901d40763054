package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/habit21/habit21/internal/app/engagement"
	"github.com/habit21/habit21/internal/domain"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every achievement and its goal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderCatalog(os.Stdout, engagement.Catalog())
	},
}

// renderCatalog prints defs grouped by category, in catalog order.
func renderCatalog(w io.Writer, defs []domain.AchievementDef) error {
	title := cases.Title(language.English)

	for i, cat := range domain.AllCategories() {
		var rows []domain.AchievementDef
		for _, d := range defs {
			if d.Category == cat {
				rows = append(rows, d)
			}
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", title.String(string(cat)), len(rows))
		for _, d := range rows {
			goal := "-"
			if d.Goal != nil {
				goal = fmt.Sprintf("%s>=%g", d.Goal.Field, d.Goal.Target)
			}
			if _, err := fmt.Fprintf(w, "  %-21s %-22s %s %s\n", d.Key, goal, d.Emoji, d.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
