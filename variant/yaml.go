package variant

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/phrasegen/pkg"
)

// ErrDecode indicates a variant document that could not be decoded.
var ErrDecode = pkg.NewError("failed to decode variants")

// LoadYAML decodes a dictionary from a YAML document of the form:
//
//	cheer:
//	  simple: yey!
//	  very: amazingly
//	negate:
//	  works: [doesn't work, doesn't actually works]
//
// Sets keep their document order. Every entry is validated.
func LoadYAML(r io.Reader) (Dictionary, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return Dictionary{}, ErrDecode.Wrap(err)
	}

	var doc yaml.MapSlice

	err = yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return Dictionary{}, ErrDecode.Wrap(err)
	}

	var d Dictionary

	for _, item := range doc {
		name := fmt.Sprint(item.Key)

		words, err := decodeSet(name, item.Value)
		if err != nil {
			return Dictionary{}, err
		}

		d.add(name, words)
	}

	if err := d.Validate(); err != nil {
		return Dictionary{}, err
	}

	return d, nil
}

func decodeSet(name string, v any) (Set, error) {
	switch m := v.(type) {
	case nil:
		return Set{}, nil
	case yaml.MapSlice:
		set := make(Set, len(m))
		for _, item := range m {
			set[fmt.Sprint(item.Key)] = item.Value
		}

		return set, nil
	case map[string]any:
		return Set(m), nil
	}

	return nil, ErrInvalidFormat.With(
		slog.String("set", name),
		slog.String("reason", "set must be a mapping of words"),
	)
}
