package cli

import (
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete SKU...",
	Aliases: []string{"rm"},
	Short:   "Delete products",
	Long:    "Deletes every product with one of the given SKUs. Unknown SKUs are ignored.",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		before := a.store.Len()
		if err := a.store.Delete(cmd.Context(), args...); err != nil {
			return err
		}

		removed := before - a.store.Len()
		if removed == 0 {
			utils.PrintWarning("No matching products")
			return nil
		}
		utils.PrintSuccess("Deleted %d product(s)", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
