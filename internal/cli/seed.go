package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovenbird/keyed/internal/catalog"
)

// NewSeedCommand creates the seed command that loads the static catalog into
// the configured sqlite database.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Initialize the sqlite catalog with the static shop data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.SQLitePath == "" {
				return fmt.Errorf("sqlite_path is not configured")
			}

			repo, err := catalog.OpenSQLite(cfg.SQLitePath)
			if err != nil {
				return err
			}
			defer repo.Release(cmd.Context())

			if err := repo.Seed(cmd.Context(), catalog.SeedCategories(), catalog.SeedPies()); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", cfg.SQLitePath)
			return nil
		},
	}
}
