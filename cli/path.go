package cli

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ardnew/nixprof/pkg"
)

const (
	// baseConfig is the base name of the configuration file, both in the
	// user's configuration directory and in a project's metadata directory.
	baseConfig = "config"
	configExt  = ".yaml"

	// configDirEnv overrides the user's configuration directory.
	configDirEnv = "NIXPROF_CONFIG_DIR"
)

var defaultDirMode os.FileMode = 0o700

// appName returns the name used for per-user directories: the executable's
// base name without extension or leading dots, or [pkg.Name] when that is
// unusable (as for binaries built by a debugger).
var appName = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimLeft(name, ".")

	if name == "" || strings.HasPrefix(name, "__debug_bin") {
		return pkg.Name
	}

	return name
})

// userDir returns the application's directory under the directory reported
// by base, falling back to home/<fallback> and then the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, appName())
}

// configDir returns the user's configuration directory.
var configDir = sync.OnceValue(func() string {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir
	}

	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the directory for transient files such as profiles.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins elem to [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
