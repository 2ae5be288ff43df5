package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/nixprof/log"
	"github.com/ardnew/nixprof/profile"
)

// Config writes a configuration file holding the current flag values.
type Config struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// configIgnore lists flags that are never written to the configuration file.
var configIgnore = []string{"help", "version", "root", "profile", profile.Tag}

// Run executes the config command.
func (c *Config) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	if _, err := os.Stat(confPath); err == nil && !c.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.Marshal(configValues(ktx))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.InfoContext(ctx, "wrote configuration file", slog.String("file", confPath))

	return nil
}

// configValues returns the values of the application flags, nested by the
// prefix before their first '-' (so "log-level" is written as level under
// log), in declaration order.
func configValues(ktx *kong.Context) yaml.MapSlice {
	var root yaml.MapSlice

	groups := map[string]int{}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(configIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := configValue(ktx.FlagValue(flag))
		if val == nil {
			continue
		}

		group, key, nested := strings.Cut(flag.Name, "-")
		if !nested {
			root = append(root, yaml.MapItem{Key: flag.Name, Value: val})

			continue
		}

		i, ok := groups[group]
		if !ok {
			i = len(root)
			groups[group] = i
			root = append(root, yaml.MapItem{Key: group, Value: yaml.MapSlice{}})
		}

		sub, _ := root[i].Value.(yaml.MapSlice)
		root[i].Value = append(sub, yaml.MapItem{Key: key, Value: val})
	}

	return root
}

// configValue returns v as written to the configuration file, or nil if v
// is empty.
func configValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}

		return v
	case []string:
		if len(v) == 0 {
			return nil
		}

		return v
	default:
		return v
	}
}
