package cmd

import (
	"fmt"

	"github.com/KaramelBytes/tabloom-cli/internal/csvcodec"
	"github.com/KaramelBytes/tabloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current dataset as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		snap, ok, err := st.Load()
		if err != nil {
			return err
		}
		if !ok {
			return errNoDataset
		}
		if exportOutput == "" {
			return csvcodec.EncodeTo(cmd.OutOrStdout(), snap.Rows)
		}
		if err := utils.SafeWriteFile(exportOutput, []byte(csvcodec.Encode(snap.Rows))); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d rows to %s\n", len(snap.Rows), exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}
