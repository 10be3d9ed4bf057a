package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/forgo/holocron/internal/service"
)

func newFavoritesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites <user-id>",
		Short: "Print a user's favorites across every kind as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || userID <= 0 {
				return fmt.Errorf("user id must be a positive integer, got %q", args[0])
			}

			store, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			favorites := service.NewFavoriteService(service.FavoriteServiceConfig{
				Repos:  store.Repos,
				Logger: c.logger,
			})
			result, err := favorites.GetUserFavorites(cmd.Context(), userID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
