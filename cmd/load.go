package cmd

import (
	"fmt"

	"github.com/KaramelBytes/tabloom-cli/internal/analysis"
	"github.com/KaramelBytes/tabloom-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	loadSheet     string
	loadDelimiter string
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a CSV/TSV or XLSX file as the current dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := decodeOptions(loadDelimiter, loadSheet)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		// Decode first: a failed parse must not touch the stored dataset.
		rows, err := parser.DecodeFile(args[0], opt)
		if err != nil {
			return err
		}
		snap, err := st.Save(displayName(args[0]), rows)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Loaded %d rows (%d columns) from %s\n", len(rows), len(snap.Columns()), snap.Name)
		p := analysis.Classify(rows)
		fmt.Fprintf(out, "  date: %d  numeric: %d  string: %d\n", len(p.DateColumns), len(p.NumericColumns), len(p.StringColumns))
		logger.Debug("dataset saved", "id", snap.ID, "dir", cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVar(&loadSheet, "sheet", "", "XLSX sheet name (default first sheet)")
	loadCmd.Flags().StringVar(&loadDelimiter, "delimiter", "", "CSV delimiter: ',', ';', 'tab', 'pipe' (default auto-detect)")
}
