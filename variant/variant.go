// Package variant holds the lexical variant dictionaries used to substitute
// alternate wordings for #Word# markers in phrase templates.
//
// A [Dictionary] is an ordered collection of named sets. Each set maps a
// lower-cased word to one replacement or a list of replacements:
//
//	d := variant.Make(
//		variant.Entry{Name: "cheer", Words: variant.Set{"very": "amazingly"}},
//		variant.Entry{Name: "negate", Words: variant.Set{"works": []string{"doesn't work"}}},
//	)
//
// Set order is significant: substitutes are generated set by set in the order
// the sets were first added.
package variant

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/phrasegen/pkg"
)

// ErrInvalidFormat indicates a variant entry that is neither a string nor a
// list of strings.
var ErrInvalidFormat = pkg.NewError("invalid variant format")

// Set maps a lower-cased word to its replacement: a string, a []string, or
// a []any of strings.
type Set map[string]any

// Entry is a named [Set].
type Entry struct {
	Name  string
	Words Set
}

// Dictionary is an ordered collection of named variant sets.
// The zero value is an empty dictionary.
type Dictionary struct {
	names []string
	sets  map[string]Set
}

// Make returns a dictionary of the given entries. Entries sharing a name are
// merged in order.
func Make(entries ...Entry) Dictionary {
	var d Dictionary
	for _, e := range entries {
		d.add(e.Name, e.Words)
	}

	return d
}

// add deep-merges words into the set called name, appending the set if it
// is new. Words are stored lower-cased.
func (d *Dictionary) add(name string, words Set) {
	if d.sets == nil {
		d.sets = make(map[string]Set)
	}

	set, ok := d.sets[name]
	if !ok {
		set = make(Set, len(words))
		d.sets[name] = set
		d.names = append(d.names, name)
	}

	for word, repl := range words {
		set[strings.ToLower(word)] = repl
	}
}

// Names returns the set names in order.
func (d Dictionary) Names() []string { return slices.Clone(d.names) }

// Len returns the number of sets.
func (d Dictionary) Len() int { return len(d.names) }

// Set returns a copy of the set called name.
func (d Dictionary) Set(name string) (Set, bool) {
	set, ok := d.sets[name]
	if !ok {
		return nil, false
	}

	return maps.Clone(set), true
}

// Merge returns a new dictionary containing the sets of d deep-merged with
// the sets of o. Words present in both take the replacement from o; sets new
// to d are appended in o's order.
func (d Dictionary) Merge(o Dictionary) Dictionary {
	var m Dictionary
	for _, name := range d.names {
		m.add(name, d.sets[name])
	}

	for _, name := range o.names {
		m.add(name, o.sets[name])
	}

	return m
}

// Replacements returns the substitutes the set called name defines for word.
// The word is matched case-insensitively. It returns [ErrInvalidFormat] if
// the entry is not a string or a list of strings.
func (d Dictionary) Replacements(name, word string) ([]string, error) {
	repl, ok := d.sets[name][strings.ToLower(word)]
	if !ok {
		return nil, nil
	}

	switch r := repl.(type) {
	case string:
		return []string{r}, nil
	case []string:
		return slices.Clone(r), nil
	case []any:
		list := make([]string, len(r))
		for i, e := range r {
			s, ok := e.(string)
			if !ok {
				return nil, invalid(name, word, repl)
			}

			list[i] = s
		}

		return list, nil
	}

	return nil, invalid(name, word, repl)
}

// Validate checks every entry of every set.
func (d Dictionary) Validate() error {
	for _, name := range d.names {
		for _, word := range slices.Sorted(maps.Keys(d.sets[name])) {
			if _, err := d.Replacements(name, word); err != nil {
				return err
			}
		}
	}

	return nil
}

// MarshalYAML encodes the dictionary as an ordered mapping of set names to
// mappings of words sorted alphabetically.
func (d Dictionary) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(d.names))

	for _, name := range d.names {
		set := d.sets[name]
		words := make(yaml.MapSlice, 0, len(set))

		for _, word := range slices.Sorted(maps.Keys(set)) {
			words = append(words, yaml.MapItem{Key: word, Value: set[word]})
		}

		out = append(out, yaml.MapItem{Key: name, Value: words})
	}

	return out, nil
}

func invalid(name, word string, repl any) error {
	return ErrInvalidFormat.With(
		slog.String("set", name),
		slog.String("word", word),
		slog.Any("value", repl),
	)
}
