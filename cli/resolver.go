package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Nested mappings are flattened by joining keys with '-', so that
//
//	log:
//	  level: debug
//	  pretty: false
//	build:
//	  output: json
//
// sets --log-level, --no-log-pretty and the build command's --output flag.
// Keys may use '_' in place of '-'. Command-line flags override file values.
// A document that cannot be decoded is ignored.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return config{}, nil //nolint:nilerr
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return config{}, nil //nolint:nilerr
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over a flattened configuration document.
type config map[string]any

// flatten copies the leaves of doc into c with their keys joined by '-'.
func (c config) flatten(prefix string, doc map[string]any) {
	for key, value := range doc {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		if nested, ok := value.(map[string]any); ok {
			c.flatten(key, nested)

			continue
		}

		c[key] = scalar(value)
	}
}

// scalar converts decoded numbers to the strings kong parses flag values
// from.
func scalar(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case []any:
		list := make([]any, len(n))
		for i, e := range n {
			list[i] = scalar(e)
		}

		return list
	}

	return v
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. Flags of a command are looked up
// under the command's name first, then at the top level.
func (c config) Resolve(
	ktx *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if ktx != nil {
		if cmd := ktx.Selected(); cmd != nil {
			if v, ok := c[cmd.Name+"-"+flag.Name]; ok {
				return v, nil
			}
		}
	}

	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
