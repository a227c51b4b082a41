package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mstcc/pkg/cache"
	"github.com/matzehuels/mstcc/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the solution cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := c.newCache(cmd.Context(), false, redisAddr)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Cache is disabled")
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "clear cache")
			}

			printSuccess("Cleared %d cached solutions", count)
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			} else {
				printDetail("Redis: %s (%s*)", redisAddr, redisPrefix)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&redisAddr, "cache-redis", "", "clear the Redis server at ADDR instead of the file cache")

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}
