package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pankajredekar/catalog/internal/product"
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show SKU",
	Short: "Show a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		p, ok := a.store.Get(args[0])
		if !ok {
			return fmt.Errorf("product %s not found", args[0])
		}

		out := cmd.OutOrStdout()
		utils.PrintField(out, "SKU", p.SKU)
		utils.PrintField(out, "Name", p.Name)
		utils.PrintField(out, "Price", formatPrice(p.Price))
		utils.PrintField(out, "Type", string(p.Type))
		utils.PrintField(out, "Details", product.Describe(p))
		utils.PrintField(out, "Image", p.ImageURL)
		utils.PrintField(out, "Created", time.UnixMilli(p.CreatedAt).Format(time.RFC3339))
		return nil
	},
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func init() {
	rootCmd.AddCommand(showCmd)
}
