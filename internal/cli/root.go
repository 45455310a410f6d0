package cli

import (
	"github.com/pankajredekar/catalog/internal/config"
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Product catalog manager",
	Long:          "Catalog manages DVDs, books and furniture with validation and pluggable storage",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the config file")
}

// Execute runs the CLI
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		utils.PrintError("%v", err)
		return err
	}
	return nil
}
