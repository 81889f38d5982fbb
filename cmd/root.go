package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/tabloom-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	debug       bool
	flagDataDir string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Process logger, configured from log_level / --debug
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "tabloom",
	Short: "TabLoom CLI: profile a tabular dataset and build dashboard series",
	Long: `TabLoom loads a CSV/TSV or XLSX file, keeps it as the current dataset, and derives
column types, KPIs, a monthly series and top categories from it. The same artifacts
are available as JSON through 'tabloom serve'.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tabloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the current dataset (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{CategoryLimit: 12, SeriesRowLimit: 200, OutputFormat: "markdown", LogLevel: "info"}
	}
	cfg = c

	if f := rootCmd.PersistentFlags(); f.Changed("data-dir") && flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logger = newLogger(level)
	slog.SetDefault(logger)
}

func newLogger(level string) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(level)})
	return slog.New(h)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
