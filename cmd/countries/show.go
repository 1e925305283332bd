package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
	"github.com/kerbaras/countries/pkg/sources"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [code]",
	Short: "Show a country with its neighbours",
	Long:  "Fetch a country by its three-letter code and list its bordering countries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := strings.ToUpper(args[0])

		country, borders, err := controller.GetCountry(cmd.Context(), code)
		if country == nil {
			if errors.Is(err, sources.ErrNotFound) {
				return fmt.Errorf("no country with code %s", code)
			}
			return err
		}

		out := cmd.OutOrStdout()
		printCountry(out, country, controller.IsFavorite(country.CCA3))

		fmt.Fprintln(out)
		fmt.Fprintln(out, sectionStyle.Render("Border Countries"))
		switch {
		case errors.Is(err, services.ErrBorderFetch):
			fmt.Fprintln(out, "Could not load border countries:", err)
		case len(borders) == 0:
			fmt.Fprintln(out, "No land borders")
		default:
			for _, b := range borders {
				fmt.Fprintf(out, "  %s  %s\n", b.CCA3, b.Name.Common)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(15)
)

func printCountry(out io.Writer, c *data.Country, favorite bool) {
	title := fmt.Sprintf("%s (%s)", c.Name.Common, c.CCA3)
	if favorite {
		title += " ★"
	}
	fmt.Fprintln(out, titleStyle.Render(title))
	if c.Flags.Alt != "" {
		fmt.Fprintln(out, wordwrap.String(c.Flags.Alt, 78))
	}
	fmt.Fprintln(out)

	for _, fact := range services.Facts(*c) {
		fmt.Fprintf(out, "%s%s\n", labelStyle.Render(fact[0]), fact[1])
	}
	if c.Maps.OpenStreetMaps != "" {
		fmt.Fprintf(out, "%s%s\n", labelStyle.Render("Map"), c.Maps.OpenStreetMaps)
	}
}
