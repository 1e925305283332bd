package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List countries",
	Long:  "Filter the country catalog by search term and region and print one page at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := criteriaFromFlags(cmd)
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			return fmt.Errorf("page must be 1 or greater")
		}

		filtered, err := controller.Search(cmd.Context(), criteria)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(filtered) == 0 {
			fmt.Fprintln(out, "No countries match your search.")
			return nil
		}

		// Pages are cumulative; --page 2 shows the first 48.
		visible := services.VisibleSlice(filtered, page, services.PageSize)
		printCountryTable(out, visible, controller.IsFavorite)

		fmt.Fprintf(out, "\nShowing %d of %d countries\n", len(visible), len(filtered))
		if services.HasMore(len(filtered), page, services.PageSize) {
			fmt.Fprintf(out, "More results: countries list --page %d%s\n", page+1, queryFlag(criteria))
		}
		return nil
	},
}

func init() {
	addCriteriaFlags(listCmd)
	listCmd.Flags().IntP("page", "p", 1, "number of pages of 24 to show")

	rootCmd.AddCommand(listCmd)
}

func queryFlag(criteria services.Criteria) string {
	if q := criteria.Encode(); q != "" {
		return fmt.Sprintf(" --query %q", q)
	}
	return ""
}

func printCountryTable(out io.Writer, countries []data.Country, favorite func(string) bool) {
	var (
		purple = lipgloss.Color("99")

		headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		}).
		Headers("", "Code", "Name", "Capital", "Region", "Population")

	for _, c := range countries {
		star := ""
		if favorite(c.CCA3) {
			star = "★"
		}
		capital := "N/A"
		if len(c.Capital) > 0 {
			capital = c.Capital[0]
		}
		t.Row(star, c.CCA3, truncateString(c.Name.Common, 40), truncateString(capital, 24), c.Region, services.FormatNumber(c.Population))
	}

	fmt.Fprintln(out, t)
}
