package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgo/holocron/internal/model"
	"github.com/forgo/holocron/internal/service"
)

func newSeedCmd(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load planets, characters and vehicles from a YAML file",
		Long: `Load catalog entities from a YAML seed file.

Entities whose id already exists are skipped, so seeding is repeatable.`,
		Example: "  holocronctl seed --file seeds/catalog.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening seed file: %w", err)
			}
			defer func() { _ = f.Close() }()

			seed, err := service.ParseCatalogSeed(f)
			if err != nil {
				return err
			}

			store, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			result, err := service.NewSeederService(store.Repos).SeedCatalog(cmd.Context(), seed)
			if err != nil {
				return err
			}

			for _, kind := range model.EntityKinds {
				if _, err := fmt.Fprintf(c.out, "%-10s created %d, skipped %d\n",
					kind.Plural(), result.Created[kind], result.Skipped[kind]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seeds/catalog.yaml", "YAML seed file")
	return cmd
}
