package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fortrabbit/craft-plugin-list/pkg/errors"
)

// configKeys maps config file keys to the flags they default.
var configKeys = map[string]string{
	"limit":        flagLimit,
	"order_by":     flagOrderBy,
	"order":        flagOrder,
	"output":       flagOutput,
	"numeric_sort": flagNumericSort,
	"concurrency":  flagConcurrency,
	"retries":      flagRetries,
	"base_url":     flagBaseURL,
	"type":         flagType,
	"cache_ttl":    flagCacheTTL,
	"redis_url":    flagRedisURL,
}

// loadConfig applies the TOML config file to every flag that was not given
// on the command line. A missing default config file is not an error; a
// missing explicit one is.
func (c *CLI) loadConfig(cmd *cobra.Command, path string) error {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return nil
		}
		path = p
	}

	values, err := readConfig(path)
	if os.IsNotExist(err) && !explicit {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "Invalid config file %s", path)
	}

	c.Logger.Debug("loaded config", "path", path, "keys", len(values))
	return applyConfig(cmd, values)
}

func readConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if _, err := toml.Decode(string(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// applyConfig sets flags from values unless they were changed explicitly.
func applyConfig(cmd *cobra.Command, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name, ok := configKeys[key]
		if !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "Unknown config key %q", key)
		}
		if cmd.Flags().Changed(name) {
			continue
		}
		if err := cmd.Flags().Set(name, fmt.Sprint(values[key])); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "Invalid config value for %s", key)
		}
	}
	return nil
}
