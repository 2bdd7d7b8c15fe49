package modifier

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the number of names returned by [Registry.Suggest].
const maxSuggestions = 3

// Registry is a concurrency-safe table of modifiers indexed by name and by
// shorthand character. It is read-mostly: templates look modifiers up at
// build time, so registrations are visible to every later build.
type Registry struct {
	mu        sync.RWMutex
	order     []string // Registration order of names
	entries   map[string]Modifier
	shorthand map[rune]string // Rebuilt from entries on every registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:   make(map[string]Modifier),
		shorthand: make(map[rune]string),
	}
}

// Default returns the shared registry pre-populated with the builtin
// modifiers.
//
//nolint:gochecknoglobals
var Default = sync.OnceValue(
	func() *Registry {
		r := NewRegistry()
		for _, m := range builtins() {
			if err := r.Register(m.Name, m.Description, m.Func, shorthandOf(m)...); err != nil {
				panic(err)
			}
		}

		return r
	},
)

// Register adds the modifier fn under name, replacing any modifier already
// registered with that name. At most one shorthand character may be given.
//
// It returns [ErrInvalidRegistration] if name or description is empty, fn is
// nil, or the shorthand is not a single printable non-space character other
// than '{' and '\'.
func (r *Registry) Register(
	name, description string,
	fn Func,
	shorthand ...rune,
) error {
	if name == "" || description == "" || fn == nil {
		return ErrInvalidRegistration.With(
			slog.String("name", name),
			slog.String("reason", "name, description, and callback are required"),
		)
	}

	if len(shorthand) > 1 || (len(shorthand) == 1 && !validShorthand(shorthand[0])) {
		return ErrInvalidRegistration.With(
			slog.String("name", name),
			slog.String("shorthand", string(shorthand)),
			slog.String("reason", "shorthand must be one printable character"),
		)
	}

	m := Modifier{Name: name, Description: description, Func: fn}
	if len(shorthand) == 1 {
		m.Shorthand = shorthand[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}

	r.entries[name] = m
	r.reindex()

	return nil
}

// reindex rebuilds the shorthand table. When several modifiers claim the
// same shorthand, the one registered last wins. The caller holds r.mu.
func (r *Registry) reindex() {
	clear(r.shorthand)

	for _, name := range r.order {
		if m := r.entries[name]; m.HasShorthand() {
			r.shorthand[m.Shorthand] = name
		}
	}
}

// Lookup returns the modifier registered under name.
func (r *Registry) Lookup(name string) (Modifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.entries[name]

	return m, ok
}

// LookupShorthand returns the modifier invoked by the shorthand character c.
func (r *Registry) LookupShorthand(c rune) (Modifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.shorthand[c]
	if !ok {
		return Modifier{}, false
	}

	return r.entries[name], true
}

// Shorthands returns a snapshot of the shorthand table.
func (r *Registry) Shorthands() map[rune]Modifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := make(map[rune]Modifier, len(r.shorthand))
	for c, name := range r.shorthand {
		index[c] = r.entries[name]
	}

	return index
}

// All returns every registered modifier sorted by name.
func (r *Registry) All() []Modifier {
	r.mu.RLock()
	all := make([]Modifier, 0, len(r.entries))

	for _, m := range r.entries {
		all = append(all, m)
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b Modifier) int {
		return strings.Compare(a.Name, b.Name)
	})

	return all
}

// Names returns the names of every registered modifier in sorted order.
func (r *Registry) Names() []string {
	all := r.All()

	names := make([]string, len(all))
	for i, m := range all {
		names[i] = m.Name
	}

	return names
}

// Suggest returns up to three registered names that fuzzy-match name,
// best match first.
func (r *Registry) Suggest(name string) []string {
	if name == "" {
		return nil
	}

	matches := fuzzy.Find(name, r.Names())

	suggest := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(suggest) == maxSuggestions {
			break
		}

		suggest = append(suggest, m.Str)
	}

	return suggest
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := NewRegistry()
	c.order = slices.Clone(r.order)

	for name, m := range r.entries {
		c.entries[name] = m
	}

	c.reindex()

	return c
}

func validShorthand(c rune) bool {
	return unicode.IsPrint(c) && !unicode.IsSpace(c) && c != '{' && c != '\\'
}

func shorthandOf(m Modifier) []rune {
	if m.HasShorthand() {
		return []rune{m.Shorthand}
	}

	return nil
}
