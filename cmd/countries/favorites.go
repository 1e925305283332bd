package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List your favorite countries",
	Long:  "Display your favorite countries, in the order they were added",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		countries, err := controller.FavoriteCountries(cmd.Context())
		if err != nil {
			return err
		}
		if len(countries) == 0 {
			fmt.Fprintln(out, "★ No favorites yet. Use 'countries favorite CODE' to add one.")
			return nil
		}

		fmt.Fprintf(out, "\n★ Favorites (%d)\n\n", len(countries))
		printCountryTable(out, countries, controller.IsFavorite)
		return nil
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite [code]",
	Short: "Add or remove a favorite country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := strings.ToUpper(strings.TrimSpace(args[0]))

		on, err := controller.ToggleFavorite(code)
		if err != nil {
			return err
		}
		if on {
			fmt.Fprintf(cmd.OutOrStdout(), "★ Added %s to favorites\n", code)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "☆ Removed %s from favorites\n", code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(favoriteCmd)
}
