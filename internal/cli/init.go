package cli

import (
	"github.com/pankajredekar/catalog/internal/config"
	"github.com/pankajredekar/catalog/internal/storage"
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/spf13/cobra"
)

var initStorageURL string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a catalog",
	Long:  "Creates a catalog.yml configuration file in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if utils.FileExists(configPath) {
			utils.PrintWarning("%s already exists", configPath)
			return nil
		}

		cfg := config.Default()
		if initStorageURL != "" {
			cfg.StorageURL = initStorageURL
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := cfg.Save(configPath); err != nil {
			return err
		}

		utils.PrintSuccess("Initialized catalog")
		utils.PrintInfo("Created %s", configPath)
		utils.PrintInfo("Products are stored in %s", describeStorage(cfg.StorageURL))
		return nil
	},
}

func describeStorage(url string) string {
	if path, ok := storage.Path(url); ok {
		return path
	}
	return url
}

func init() {
	initCmd.Flags().StringVar(&initStorageURL, "storage", "", "storage URL (memory://, file://, bolt://, redis://, sqlite://, postgres://)")
	rootCmd.AddCommand(initCmd)
}
