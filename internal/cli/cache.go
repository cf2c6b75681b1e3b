package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortrabbit/craft-plugin-list/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the registry response cache",
		Long: `Registry responses are cached only when --cache-ttl is set. They are
stored in the cache directory, or in Redis when --redis-url is given.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisURL string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached registry responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var store cache.Cache
			where := redisURL
			if redisURL != "" {
				s, err := cache.NewRedisCache(ctx, redisURL, redisPrefix)
				if err != nil {
					return err
				}
				store = s
			} else {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				s, err := cache.NewFileCache(dir)
				if err != nil {
					return fmt.Errorf("open cache dir: %w", err)
				}
				store, where = s, dir
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache at %s cannot be cleared", where)
			}
			count, err := clearer.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if count == 0 {
				printInfo(c.Stdout, "Cache is empty")
				return nil
			}
			printSuccess(c.Stdout, "Cleared %d cached entries", count)
			printDetail(c.Stdout, "Location: %s", where)
			return nil
		},
	}

	cmd.Flags().StringVar(&redisURL, flagRedisURL, "", "clear the Redis cache instead of the cache directory")
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
			fmt.Fprintln(c.Stdout, dir)
			return nil
		},
	}
}
