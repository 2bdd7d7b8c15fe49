package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

type (
	contextKey    struct{}
	searchPathKey struct{}
)

// WithContext returns a copy of ctx holding ktx.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// WithSearchPath returns a copy of ctx holding the directories searched for
// input files given by relative path.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// stdinName names the standard input where a file is expected.
const stdinName = "-"

// locate returns the path of the input file called name. Absolute paths and
// paths that exist relative to the working directory are returned as given.
// Otherwise each directory of the search path is tried in order.
func locate(ctx context.Context, name string) (string, error) {
	if name == stdinName || filepath.IsAbs(name) || exists(name) {
		return name, nil
	}

	for _, dir := range searchPathFrom(ctx) {
		if path := filepath.Join(dir, name); exists(path) {
			return path, nil
		}
	}

	return "", ErrFileNotFound.With(
		slog.String("name", name),
		slog.Any("search_path", searchPathFrom(ctx)),
	)
}

func exists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// fileKey identifies a file by device and inode, so the same file reached
// through different paths or symlinks is recognized.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// locateAll locates each of names, dropping repeated references to the same
// file. The standard input is kept at most once, in its first position.
func locateAll(ctx context.Context, names []string) ([]string, error) {
	var (
		paths = make([]string, 0, len(names))
		seen  = make(map[fileKey]struct{}, len(names))
		stdin bool
	)

	for _, name := range names {
		path, err := locate(ctx, name)
		if err != nil {
			return nil, err
		}

		if path == stdinName {
			if !stdin {
				paths = append(paths, path)
			}

			stdin = true

			continue
		}

		if info, err := os.Stat(path); err == nil {
			if key, ok := makeFileKey(info); ok {
				if _, dup := seen[key]; dup {
					continue
				}

				seen[key] = struct{}{}
			}
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// stdout returns the writer command output is printed to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}
