package cli

import (
	"fmt"
	"strings"

	"github.com/pankajredekar/catalog/internal/storage"
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/spf13/cobra"
)

var schemaRollback int

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show storage schema status",
	Long: `Shows applied and pending schema migrations of SQL storage.

With --rollback N the last N migrations are reverted first. Reverting 0001
drops the products table. Pending migrations are applied again the next time
the catalog is opened.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		db, ok := a.backend.(*storage.SQL)
		if !ok {
			utils.PrintInfo("%s storage has no schema", storage.Scheme(a.cfg.StorageURL))
			return nil
		}

		if schemaRollback > 0 {
			utils.PrintInfo("Rolling back %d migration(s)...", schemaRollback)
			if err := db.Rollback(cmd.Context(), schemaRollback); err != nil {
				return err
			}
			utils.PrintSuccess("Rolled back")
		}

		applied, pending, err := db.SchemaStatus(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, strings.Repeat("=", 40))
		fmt.Fprintln(out, "Schema Status")
		fmt.Fprintln(out, strings.Repeat("=", 40))

		if len(applied) > 0 {
			fmt.Fprintln(out, "\n✓ Applied:")
			for _, v := range applied {
				fmt.Fprintf(out, "  %s\n", v)
			}
		} else {
			fmt.Fprintln(out, "\n✓ Applied: (none)")
		}

		if len(pending) > 0 {
			fmt.Fprintln(out, "\n○ Pending:")
			for _, m := range pending {
				fmt.Fprintf(out, "  %s - %s\n", m.Version(), m.Name())
			}
		} else {
			fmt.Fprintln(out, "\n○ Pending: (none)")
		}
		return nil
	},
}

func init() {
	schemaCmd.Flags().IntVar(&schemaRollback, "rollback", 0, "revert the last N migrations")
	rootCmd.AddCommand(schemaCmd)
}
