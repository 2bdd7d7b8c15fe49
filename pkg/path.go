package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

// Prefix returns the base name of the running executable, without extension.
// It names the configuration and cache directories, so that a renamed binary
// keeps its own settings.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	id := os.Args[0]
	if exe, err := os.Executable(); err == nil {
		id = exe
	}

	return executableName(id)
})

//nolint:gochecknoglobals
var debugBinary = regexp.MustCompile(`^__debug_bin\d*$`)

// executableName derives [Prefix] from an executable path. Debugger builds
// are named after the project, and leading dots are removed.
func executableName(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if base == "" || debugBinary.MatchString(base) {
		return Name
	}

	return base
}

// EnvVar returns the environment variable name for the setting key,
// e.g. EnvVar("config dir") is "PHRASEGEN_CONFIG_DIR".
func EnvVar(key string) string {
	return strcase.ToScreamingSnake(Name + " " + key)
}

// ConfigDir returns the configuration directory path.
// The environment variable EnvVar("config dir") overrides it.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(EnvVar("config dir"), os.UserConfigDir, ".config")
})

// CacheDir returns the cache directory path used for transient files.
// The environment variable EnvVar("cache dir") overrides it.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(EnvVar("cache dir"), os.UserCacheDir, ".cache")
})

// userDir returns the directory named by the environment variable env if
// set. Otherwise it returns the [Prefix] subdirectory of the directory
// reported by base, falling back to hidden in the home directory, then to
// the working directory.
func userDir(env string, base func() (string, error), hidden string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}

	dir, err := base()
	if err != nil {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
