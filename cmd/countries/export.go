package cmd

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kerbaras/countries/pkg/services"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your favorites as an EPUB guide",
	Long:  "Compile your favorite countries, with flags and neighbours, into an EPUB travel guide",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("out")
		out := cmd.OutOrStdout()

		progress := controller.Exporter().GetProgressChannel()
		done := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)

		// Listen for progress
		go func() {
			defer wg.Done()
			for {
				select {
				case p := <-progress:
					printExportProgress(out, p)
				case <-done:
					return
				}
			}
		}()

		path, err := controller.Export(cmd.Context(), outputDir)
		close(done)
		wg.Wait()
		// Updates still buffered when Export returned
		for drained := false; !drained; {
			select {
			case p := <-progress:
				printExportProgress(out, p)
			default:
				drained = true
			}
		}

		if errors.Is(err, services.ErrNothingToExport) {
			fmt.Fprintln(out, "★ No favorites to export. Use 'countries favorite CODE' first.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Fprintf(out, "✅ Guide created: %s\n", path)
		return nil
	},
}

func printExportProgress(out io.Writer, progress services.ExportProgress) {
	switch progress.Status {
	case "fetching":
		fmt.Fprintf(out, "🌍 Fetching %d favorites...\n", progress.Total)
	case "flag":
		fmt.Fprintf(out, "  Flag %s: %d/%d\n", progress.Code, progress.Current, progress.Total)
	case "writing":
		fmt.Fprintln(out, "📖 Writing guide...")
	}
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "output directory (default ~/Downloads)")

	rootCmd.AddCommand(exportCmd)
}
