// Package cli implements the craft-plugin-list command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fortrabbit/craft-plugin-list/pkg/buildinfo"
	"github.com/fortrabbit/craft-plugin-list/pkg/cache"
	"github.com/fortrabbit/craft-plugin-list/pkg/integrations/packagist"
	"github.com/fortrabbit/craft-plugin-list/pkg/pipeline"
	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "craft-plugin-list"

	// redisPrefix namespaces cache keys in a shared Redis database.
	redisPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives results and user messages, Stderr the progress bar.
	Stdout io.Writer
	Stderr io.Writer

	// Browse shows records interactively. It defaults to the bubbletea
	// browser and is replaced in tests.
	Browse func(ctx context.Context, records []plugins.PackageRecord) error
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	c.Browse = c.browse
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command lists plugins.
func (c *CLI) RootCommand() *cobra.Command {
	flags := defaultFlags()

	root := &cobra.Command{
		Use:   appName,
		Short: "List Craft CMS plugins from Packagist",
		Long: `craft-plugin-list fetches packages of type craft-plugin from Packagist,
skips abandoned packages and packages without a plugin handle, sorts the rest
and prints them as a table or saves them as JSON.`,
		Example: `  craft-plugin-list --limit 10 --orderBy favers --order asc
  craft-plugin-list --limit 50 --output plugins.json`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd, flags.config); err != nil {
				return c.report(cmd.Context(), err)
			}
			return c.runList(cmd.Context(), flags)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	flags.register(root)

	// Register all subcommands
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The returned cache must
// be closed by the caller.
func (c *CLI) newRunner(ctx context.Context, f *listFlags, logger *log.Logger) (*pipeline.Runner, cache.Cache, error) {
	store, err := newCache(ctx, f.cacheTTL, f.redisURL)
	if err != nil {
		return nil, nil, err
	}
	reg := packagist.NewClient(packagist.Options{
		BaseURL:  f.baseURL,
		Cache:    store,
		CacheTTL: f.cacheTTL,
		Refresh:  f.refresh,
		Attempts: f.retries,
	})
	return pipeline.NewRunner(reg, logger), store, nil
}

// newCache returns the response cache. Caching is off unless ttl is positive.
func newCache(ctx context.Context, ttl time.Duration, redisURL string) (cache.Cache, error) {
	if ttl <= 0 {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL, redisPrefix)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/craft-plugin-list/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default config file (~/.config/craft-plugin-list/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
