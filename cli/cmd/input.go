package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/phrasegen/variant"
)

// Inputs are the bindings and variant files shared by several commands.
type Inputs struct {
	Bindings string   `help:"YAML file of variable bindings."                     placeholder:"FILE" short:"b"`
	Variants []string `help:"YAML variant dictionary file(s), merged in order." placeholder:"FILE" short:"V"`
}

// files returns the located paths of every input file.
func (in Inputs) files(ctx context.Context) ([]string, error) {
	names := in.Variants
	if in.Bindings != "" {
		names = append([]string{in.Bindings}, names...)
	}

	return locateAll(ctx, names)
}

// bindings decodes the bindings file. Without one the bindings are empty.
func (in Inputs) bindings(ctx context.Context) (map[string]any, error) {
	if in.Bindings == "" {
		return map[string]any{}, nil
	}

	path, err := locate(ctx, in.Bindings)
	if err != nil {
		return nil, err
	}

	var vars map[string]any

	err = readFile(path, func(r io.Reader) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}

		return yaml.Unmarshal(data, &vars)
	})
	if err != nil {
		return nil, ErrDecodeBindings.Wrap(err).With(slog.String("path", path))
	}

	if vars == nil {
		vars = map[string]any{}
	}

	return vars, nil
}

// variants loads and merges the variant files in order.
func (in Inputs) variants(ctx context.Context) (variant.Dictionary, error) {
	var dict variant.Dictionary

	paths, err := locateAll(ctx, in.Variants)
	if err != nil {
		return dict, err
	}

	for _, path := range paths {
		err := readFile(path, func(r io.Reader) error {
			d, err := variant.LoadYAML(r)
			if err != nil {
				return err
			}

			dict = dict.Merge(d)

			return nil
		})
		if err != nil {
			return variant.Dictionary{}, ErrLoadVariants.Wrap(err).With(slog.String("path", path))
		}
	}

	return dict, nil
}

// readFile calls read with the contents of path, or of the standard input
// if path is "-".
func readFile(path string, read func(io.Reader) error) error {
	if path == stdinName {
		return read(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return read(f)
}

// readPhrases reads one phrase per line. Blank lines are skipped, as are
// comment lines: a lone '#' or a '#' followed by a space. Variant markers
// such as "#word#" begin a phrase, not a comment.
func readPhrases(r io.Reader) ([]string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	var phrases []string

	scanner := bufio.NewScanner(ra)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "#" || strings.HasPrefix(line, "# ") {
			continue
		}

		phrases = append(phrases, line)
	}

	return phrases, scanner.Err()
}
