package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/nixprof/log"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Nested mappings are joined to flag names with '-', so
//
//	log:
//	  level: debug
//	  pretty: true
//
// sets --log-level and --log-pretty. Keys may also spell a flag name with
// underscores, as in log_level. A file that is not a YAML mapping is
// reported and configures nothing. Command-line flags override configured
// values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring invalid configuration file", slog.Any("error", err))
		}

		return config{}, nil
	}

	c := config{}
	c.flatten("", doc)

	return c, nil
}

// config implements [kong.Resolver] over flattened configuration keys.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ReplaceAll(k, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := v.(type) {
		case map[string]any:
			c.flatten(key, v)
		case uint64:
			c[key] = strconv.FormatUint(v, 10)
		case int64:
			c[key] = strconv.FormatInt(v, 10)
		case int:
			c[key] = strconv.Itoa(v)
		case float64:
			c[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			c[key] = v
		}
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
