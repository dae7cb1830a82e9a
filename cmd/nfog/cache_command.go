package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nfog/internal/catalog/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Catalog lookup cache utilities",
	}

	var all bool
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Remove expired catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := cache.Open(cfg.CachePath())
			if err != nil {
				return err
			}
			defer store.Close()

			maxAge := cfg.CacheTTL()
			if !all && maxAge <= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cached entries never expire (catalog.cache_ttl_hours = 0); use --all to clear them")
				return nil
			}
			if all {
				maxAge = 0
			}
			removed, err := store.Purge(cmd.Context(), maxAge)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached entries from %s\n", removed, store.Path())
			return nil
		},
	}
	purge.Flags().BoolVar(&all, "all", false, "Remove every entry, not only expired ones")
	cacheCmd.AddCommand(purge)
	return cacheCmd
}
