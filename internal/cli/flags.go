package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fortrabbit/craft-plugin-list/pkg/integrations/packagist"
	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

// Flag names. The four listing options keep their historical camelCase
// spelling.
const (
	flagLimit       = "limit"
	flagOrderBy     = "orderBy"
	flagOrder       = "order"
	flagOutput      = "output"
	flagNumericSort = "numeric-sort"
	flagConcurrency = "concurrency"
	flagRetries     = "retries"
	flagBaseURL     = "base-url"
	flagType        = "type"
	flagCacheTTL    = "cache-ttl"
	flagRedisURL    = "redis-url"
	flagRefresh     = "refresh"
	flagInteractive = "interactive"
	flagConfig      = "config"
)

// listFlags holds the root command's flag values.
type listFlags struct {
	limit   string
	orderBy string
	order   string
	output  string

	numericSort bool
	concurrency int
	retries     int
	baseURL     string
	packageType string
	cacheTTL    time.Duration
	redisURL    string
	refresh     bool
	interactive bool
	config      string
}

func defaultFlags() *listFlags {
	raw := plugins.DefaultRawOptions()
	return &listFlags{
		limit:       raw.Limit,
		orderBy:     raw.OrderBy,
		order:       raw.Order,
		concurrency: 1,
		retries:     1,
		baseURL:     packagist.DefaultBaseURL,
		packageType: plugins.PackageType,
	}
}

func (f *listFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.limit, flagLimit, f.limit, "maximum number of plugins to list")
	fs.StringVar(&f.orderBy, flagOrderBy, f.orderBy, "sort by downloads, favers, dependents, testLibrary or updated")
	fs.StringVar(&f.order, flagOrder, f.order, "sort order: asc or desc")
	fs.StringVar(&f.output, flagOutput, f.output, "save the list to this .json file instead of printing a table")

	fs.BoolVar(&f.numericSort, flagNumericSort, false, "compare downloads, favers and dependents as numbers")
	fs.IntVar(&f.concurrency, flagConcurrency, f.concurrency, "number of package details fetched in parallel")
	fs.IntVar(&f.retries, flagRetries, f.retries, "attempts per request on network and 5xx failures")
	fs.StringVar(&f.baseURL, flagBaseURL, f.baseURL, "registry base URL")
	fs.StringVar(&f.packageType, flagType, f.packageType, "package type to list")
	fs.DurationVar(&f.cacheTTL, flagCacheTTL, 0, "cache registry responses for this long (0 disables caching)")
	fs.StringVar(&f.redisURL, flagRedisURL, "", "cache in Redis instead of the cache directory")
	fs.BoolVar(&f.refresh, flagRefresh, false, "ignore cached responses and fetch fresh ones")
	fs.BoolVarP(&f.interactive, flagInteractive, "i", false, "browse the result interactively")
	fs.StringVar(&f.config, flagConfig, "", "config file (default $XDG_CONFIG_HOME/"+appName+"/config.toml)")

	_ = cmd.RegisterFlagCompletionFunc(flagOrderBy, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(plugins.OrderByValues))
		for i, v := range plugins.OrderByValues {
			out[i] = string(v)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc(flagOrder, cobra.FixedCompletions(
		[]string{string(plugins.OrderAsc), string(plugins.OrderDesc)}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.MarkFlagFilename(flagOutput, "json")
	_ = cmd.MarkFlagFilename(flagConfig, "toml")
}

// rawOptions returns the listing options as typed.
func (f *listFlags) rawOptions() plugins.RawOptions {
	return plugins.RawOptions{
		Limit:   f.limit,
		OrderBy: f.orderBy,
		Order:   f.order,
		Output:  f.output,
	}
}

func (f *listFlags) compare() plugins.Compare {
	if f.numericSort {
		return plugins.CompareNumeric
	}
	return plugins.CompareLexical
}
