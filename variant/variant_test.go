package variant

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-yaml"
)

func base() Dictionary {
	return Make(
		Entry{Name: "cheer", Words: Set{"simple": "yey!", "very": "amazingly"}},
		Entry{Name: "negate", Words: Set{
			"works":     []string{"doesn't work", "doesn't actually works"},
			"functions": []any{"doesn't function", "doesn't actually functions"},
			"very":      "not so",
		}},
		Entry{Name: "expects", Words: Set{"works": []string{"is expected to work"}}},
	)
}

func TestDictionaryOrder(t *testing.T) {
	d := base()

	if got := d.Names(); !slices.Equal(got, []string{"cheer", "negate", "expects"}) {
		t.Errorf("Names() = %v", got)
	}

	m := d.Merge(Make(
		Entry{Name: "complacent", Words: Set{"well": "fine"}},
		Entry{Name: "cheer", Words: Set{"simple": "hooray"}},
	))

	if got := m.Names(); !slices.Equal(got, []string{"cheer", "negate", "expects", "complacent"}) {
		t.Errorf("merged Names() = %v", got)
	}

	if got, _ := m.Replacements("cheer", "simple"); !slices.Equal(got, []string{"hooray"}) {
		t.Errorf("override not applied: %v", got)
	}

	if got, _ := m.Replacements("cheer", "very"); !slices.Equal(got, []string{"amazingly"}) {
		t.Errorf("deep merge lost a word: %v", got)
	}

	if got, _ := d.Replacements("cheer", "simple"); !slices.Equal(got, []string{"yey!"}) {
		t.Errorf("Merge mutated its receiver: %v", got)
	}
}

func TestReplacements(t *testing.T) {
	d := base().Merge(Make(Entry{Name: "bad", Words: Set{"good": regexp.MustCompile("whatawhat")}}))

	tests := []struct {
		set, word string
		want      []string
		wantErr   bool
	}{
		{"cheer", "Simple", []string{"yey!"}, false},
		{"negate", "works", []string{"doesn't work", "doesn't actually works"}, false},
		{"negate", "functions", []string{"doesn't function", "doesn't actually functions"}, false},
		{"expects", "very", nil, false},
		{"missing", "very", nil, false},
		{"bad", "good", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.set+"/"+tt.word, func(t *testing.T) {
			got, err := d.Replacements(tt.set, tt.word)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("error = %v, want ErrInvalidFormat", err)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Replacements(%q, %q) = %v, want %v", tt.set, tt.word, got, tt.want)
			}
		})
	}

	if err := d.Validate(); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Validate() = %v, want ErrInvalidFormat", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(base())
	snap := r.Snapshot()

	r.Add(Make(Entry{Name: "complacent", Words: Set{"well": "fine"}}))

	if snap.Len() != 3 {
		t.Errorf("snapshot changed after Add: %v", snap.Names())
	}

	if got := r.Names(); len(got) != 4 || got[3] != "complacent" {
		t.Errorf("Names() = %v", got)
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)

		go func() {
			defer wg.Done()
			r.Add(Make(Entry{Name: string(rune('a' + i)), Words: Set{"w": "x"}}))
		}()

		go func() {
			defer wg.Done()
			_ = r.Snapshot().Names()
		}()
	}

	wg.Wait()

	if n := len(r.Names()); n != 8 {
		t.Errorf("Names() has %d sets, want 8", n)
	}
}

func TestLoadYAML(t *testing.T) {
	const doc = `
negate:
  works: [doesn't work, doesn't actually works]
  Very: not so
cheer:
  very: amazingly
`

	d, err := LoadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	if got := d.Names(); !slices.Equal(got, []string{"negate", "cheer"}) {
		t.Errorf("Names() = %v, want document order", got)
	}

	if got, _ := d.Replacements("negate", "very"); !slices.Equal(got, []string{"not so"}) {
		t.Errorf("keys should be lower-cased: %v", got)
	}

	out, err := yaml.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}

	again, err := LoadYAML(strings.NewReader(string(out)))
	if err != nil {
		t.Fatalf("re-decoding marshaled output: %v\n%s", err, out)
	}

	if !slices.Equal(again.Names(), d.Names()) {
		t.Errorf("marshaled order = %v, want %v", again.Names(), d.Names())
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"syntax", "cheer: [unterminated", ErrDecode},
		{"scalar set", "cheer: yey", ErrInvalidFormat},
		{"number entry", "cheer:\n  very: [1, 2]", ErrInvalidFormat},
		{"nested entry", "cheer:\n  very:\n    deeper: x", ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadYAML() error = %v, want %v", err, tt.want)
			}
		})
	}
}
