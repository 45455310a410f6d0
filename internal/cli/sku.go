package cli

import (
	"fmt"

	"github.com/pankajredekar/catalog/internal/skugen"
	"github.com/spf13/cobra"
)

var skuCount int

var skuCmd = &cobra.Command{
	Use:   "sku",
	Short: "Generate SKUs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if skuCount < 1 {
			return fmt.Errorf("count must be positive")
		}
		for i := 0; i < skuCount; i++ {
			fmt.Fprintln(cmd.OutOrStdout(), skugen.Generate())
		}
		return nil
	},
}

func init() {
	skuCmd.Flags().IntVarP(&skuCount, "count", "n", 1, "number of SKUs")
	rootCmd.AddCommand(skuCmd)
}
