package cli

import (
	"github.com/pankajredekar/catalog/internal/draft"
	"github.com/pankajredekar/catalog/internal/skugen"
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/spf13/cobra"
)

var addFlags productFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Long:  "Validates and stores a new product. A SKU is generated when --sku is not given and the type defaults to DVD.",
	Example: `  catalog add --name "Movie" --price 9.99 --image http://x/i.png --size 700
  catalog add -t book --name "Novel" --price 12 --image-file cover.png --weight 0.4`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		d := draft.New(skugen.Generate)
		if err := addFlags.apply(ctx, cmd, a, d); err != nil {
			return err
		}

		saved, err := submit(ctx, a, d)
		if err != nil {
			return err
		}
		utils.PrintSuccess("Added %s (%s)", saved.SKU, saved.Name)
		return nil
	},
}

func init() {
	addFlags.register(addCmd, true)
	rootCmd.AddCommand(addCmd)
}
