package cli

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/phrasegen/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// searchPathEnv names the environment variable holding the default search
// path for template, bindings and variant files.
var searchPathEnv = pkg.EnvVar("path")

var defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with elem.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// searchPath returns the directories searched for input files: dirs in
// order, followed by the entries of env, followed by the configuration
// directory. Duplicates and entries that are not existing directories are
// removed.
func searchPath(env string, dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(env, pkg.ConfigDir()),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	if list == "" {
		return nil
	}

	seen := make(map[string]struct{})

	return slices.DeleteFunc(filepath.SplitList(list), func(dir string) bool {
		if _, dup := seen[dir]; dup || !isDir(dir) {
			return true
		}

		seen[dir] = struct{}{}

		return false
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
