package cli

import (
	"errors"
	"fmt"

	"github.com/pankajredekar/catalog/internal/draft"
	"github.com/pankajredekar/catalog/internal/store"
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/spf13/cobra"
)

var editFlags productFlags

var editCmd = &cobra.Command{
	Use:   "edit SKU",
	Short: "Edit a product",
	Long:  "Changes the given fields of a stored product. Changing the type clears the previous attributes.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := draft.Edit(a.store, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("product %s not found", args[0])
		}
		if err != nil {
			return err
		}

		if err := editFlags.apply(ctx, cmd, a, d); err != nil {
			return err
		}

		saved, err := submit(ctx, a, d)
		if err != nil {
			return err
		}
		utils.PrintSuccess("Updated %s (%s)", saved.SKU, saved.Name)
		return nil
	},
}

func init() {
	editFlags.register(editCmd, false)
	rootCmd.AddCommand(editCmd)
}
