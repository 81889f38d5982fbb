package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/tabloom-cli/internal/config"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set TabLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_dir: %s\n", cfg.DataDir)
		fmt.Fprintf(out, "category_limit: %d\n", cfg.CategoryLimit)
		fmt.Fprintf(out, "series_row_limit: %d\n", cfg.SeriesRowLimit)
		fmt.Fprintf(out, "sample_size: %d (fixed)\n", analysis.SampleSize)
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		if cfg.DefaultDelimiter != "" {
			fmt.Fprintf(out, "default_delimiter: %q\n", cfg.DefaultDelimiter)
		}
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(out, "max_upload_mb: %d\n", cfg.MaxUploadMB)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_dir":
			cfg.DataDir = val
		case "category_limit":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.CategoryLimit = i
		case "series_row_limit":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.SeriesRowLimit = i
		case "output_format":
			switch strings.ToLower(val) {
			case "markdown", "md":
				cfg.OutputFormat = "markdown"
			case "json":
				cfg.OutputFormat = "json"
			default:
				return fmt.Errorf("invalid output_format: %s (use markdown or json)", val)
			}
		case "default_delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.DefaultDelimiter = val
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		case "listen_addr":
			cfg.ListenAddr = val
		case "max_upload_mb":
			i, err := positiveInt(key, val)
			if err != nil {
				return err
			}
			cfg.MaxUploadMB = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func positiveInt(key, val string) (int, error) {
	i, err := cast.ToIntE(strings.TrimSpace(val))
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}
