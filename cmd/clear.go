package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the current dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		if err := st.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared current dataset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
