package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kerbaras/countries/pkg/app"
	"github.com/kerbaras/countries/pkg/app/styles"
	"github.com/kerbaras/countries/pkg/config"
	"github.com/kerbaras/countries/pkg/data"
	"github.com/kerbaras/countries/pkg/services"
	"github.com/kerbaras/countries/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	cfg        config.Config
	controller *services.ExplorerController
	logCloser  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "countries",
	Short: "Explore the countries of the world",
	Long:  "Browse, search and favorite countries from the REST Countries API with a TUI and CLI",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch TUI by default
		criteria, err := criteriaFromFlags(cmd)
		if err != nil {
			return err
		}
		a := app.NewApp(controller, currentTheme(), criteria)
		return a.Run()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ~/.countries/config.yaml)")
	flags.String("db", "", "preferences database path")
	flags.String("api", "", "REST Countries base URL")
	flags.Duration("timeout", 0, "HTTP request timeout")
	flags.String("log-file", "", "log file path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	addCriteriaFlags(rootCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		teardown()
		os.Exit(1)
	}
}

// setup resolves configuration (defaults, file, env, then flags), starts logging
// and opens the controller shared by every command.
func setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("db") {
		cfg.DBPath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("api") {
		cfg.APIURL, _ = cmd.Flags().GetString("api")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile, _ = cmd.Flags().GetString("log-file")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	logCloser, err = utils.SetupLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}

	controller, err = services.NewExplorerController(services.ControllerConfig{
		BaseURL:   cfg.APIURL,
		DBPath:    cfg.DBPath,
		Timeout:   cfg.Timeout,
		ExportDir: cfg.ExportDir,
	})
	if err != nil {
		return err
	}

	slog.Debug("started", "command", cmd.Name(), "api", cfg.APIURL, "db", cfg.DBPath)
	return nil
}

func teardown() error {
	var err error
	if controller != nil {
		err = controller.Close()
		controller = nil
	}
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
	return err
}

// currentTheme is the stored theme, else the configured one, else whatever
// matches the terminal background.
func currentTheme() data.Theme {
	fallback := styles.DetectTheme()
	if t, ok := data.ParseTheme(cfg.Theme); ok {
		fallback = t
	}
	return controller.Themes().Load(fallback)
}

func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "search term (name, official name or capital)")
	cmd.Flags().StringP("region", "r", "", "region filter (Africa, Americas, Asia, Europe, Oceania, Antarctic)")
	cmd.Flags().StringP("query", "q", "", "shared query string, e.g. \"search=uni&region=Europe\"")
}

// criteriaFromFlags starts from --query; --search and --region override it.
func criteriaFromFlags(cmd *cobra.Command) (services.Criteria, error) {
	query, _ := cmd.Flags().GetString("query")
	criteria, err := services.ParseCriteria(query)
	if err != nil {
		return criteria, err
	}
	if cmd.Flags().Changed("search") {
		criteria.Search, _ = cmd.Flags().GetString("search")
	}
	if cmd.Flags().Changed("region") {
		criteria.Region, _ = cmd.Flags().GetString("region")
	}
	if criteria.Region != "" && !validRegion(criteria.Region) {
		return criteria, fmt.Errorf("unknown region %q", criteria.Region)
	}
	return criteria, nil
}

func validRegion(region string) bool {
	for _, r := range services.Regions {
		if r == region {
			return true
		}
	}
	return false
}

func truncateString(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
