package cmd

import (
	"fmt"

	"github.com/kerbaras/countries/pkg/app/components"
	"github.com/kerbaras/countries/pkg/services"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show world statistics",
	Long:  "Count countries per region and list the most populous ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")

		stats, err := controller.Stats(cmd.Context(), top)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render(fmt.Sprintf("Countries by region (%d total)", stats.Total)))
		bars := make([]components.Bar, len(stats.Regions))
		for i, r := range stats.Regions {
			bars[i] = components.Bar{Label: r.Region, Value: int64(r.Count), Display: fmt.Sprintf("%d", r.Count)}
		}
		fmt.Fprintln(out, components.BarChart(bars, 70))

		fmt.Fprintln(out, sectionStyle.Render("Most populous countries"))
		for i, c := range stats.Top {
			fmt.Fprintf(out, "%3d. %-32s %15s\n", i+1, truncateString(c.Name.Common, 32), services.FormatNumber(c.Population))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("top", "n", 10, "number of most populous countries to list")

	rootCmd.AddCommand(statsCmd)
}
