package cmd

import (
	"fmt"

	"github.com/kerbaras/countries/pkg/data"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		themes := controller.Themes()

		if len(args) == 0 {
			fmt.Fprintln(out, currentTheme())
			return nil
		}

		var next data.Theme
		switch args[0] {
		case "toggle":
			next = currentTheme().Toggle()
		default:
			t, ok := data.ParseTheme(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q, use light, dark or toggle", args[0])
			}
			next = t
		}

		if err := themes.Set(next); err != nil {
			return err
		}
		fmt.Fprintf(out, "Theme set to %s\n", next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
