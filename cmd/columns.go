package cmd

import (
	"fmt"

	"github.com/KaramelBytes/tabloom-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	columnsSheet     string
	columnsDelimiter string
)

var columnsCmd = &cobra.Command{
	Use:   "columns [file]",
	Short: "List columns and their inferred kinds",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := decodeOptions(columnsDelimiter, columnsSheet)
		if err != nil {
			return err
		}
		name, rows, err := datasetFromArgs(args, opt)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		p := analysis.Classify(rows)
		if len(p.AllColumns) == 0 {
			fmt.Fprintf(out, "%s: no columns\n", name)
			return nil
		}
		fmt.Fprintf(out, "%s (%d rows, sampled %d)\n", name, len(rows), min(len(rows), analysis.SampleSize))
		for _, c := range p.Columns() {
			fmt.Fprintf(out, "  %-24s %s\n", c.Name, c.Kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().StringVar(&columnsSheet, "sheet", "", "XLSX sheet name when a file is given")
	columnsCmd.Flags().StringVar(&columnsDelimiter, "delimiter", "", "CSV delimiter when a file is given")
}
