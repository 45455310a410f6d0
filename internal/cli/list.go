package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pankajredekar/catalog/internal/listing"
	"github.com/pankajredekar/catalog/internal/product"
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/spf13/cobra"
)

var (
	listPage    int
	listPerPage int
	listSort    string
	listAsc     bool
	listType    string
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long:  "Lists products newest first, one page at a time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		opts := listing.Options{
			SortBy:    listSort,
			Ascending: listAsc,
			Page:      listPage,
			PerPage:   listPerPage,
		}
		if opts.PerPage == 0 {
			opts.PerPage = a.cfg.PageSize
		}
		if listType != "" {
			t, ok := product.ParseType(listType)
			if !ok {
				return fmt.Errorf("unknown product type %q", listType)
			}
			opts.Type = t
		}

		page, err := listing.Apply(a.store.List(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			data, err := product.EncodeCollection(page.Items)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if page.Total == 0 {
			utils.PrintInfo("No products")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SKU\tNAME\tPRICE\tTYPE\tDETAILS")
		for _, p := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.SKU, p.Name, formatPrice(p.Price), p.Type, product.Describe(p))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintf(out, "Page %d of %d (%d products)\n", page.Page, page.TotalPages, page.Total)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	listCmd.Flags().IntVar(&listPerPage, "per-page", 0, "products per page (default from config)")
	listCmd.Flags().StringVar(&listSort, "sort", listing.SortCreatedAt, "sort by: "+strings.Join(listing.SortKeys(), ", "))
	listCmd.Flags().BoolVar(&listAsc, "asc", false, "ascending order")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "only list this product type")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the page as JSON")
	rootCmd.AddCommand(listCmd)
}
