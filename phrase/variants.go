package phrase

import (
	"strings"
)

// candidate is one substitute for a variant marker. set is empty for the
// marker's own text.
type candidate struct {
	text string
	set  string
}

// substituteVariants fans out every #word# marker into the word itself
// followed by each substitute the variant dictionary defines for it.
func (b *build) substituteVariants(phrases []string) ([]Result, error) {
	return fanOut(b.ctx, phrases, b.budget, func(p string) ([]Result, error) {
		markers := scanDelimited(p, '#', '#')
		if len(markers) == 0 {
			return []Result{{Text: p, Variants: []string{}}}, nil
		}

		segments := make([][]candidate, 0, 2*len(markers)+1)
		last := 0

		for _, m := range markers {
			cands, err := b.candidates(p[m.start+1 : m.end-1])
			if err != nil {
				return nil, err
			}

			segments = append(segments, []candidate{{text: p[last:m.start]}}, cands)
			last = m.end
		}

		segments = append(segments, []candidate{{text: p[last:]}})

		joined, err := product(b.ctx, segments, b.budget)
		if err != nil {
			return nil, err
		}

		out := make([]Result, len(joined))

		for i, parts := range joined {
			var text strings.Builder

			sets := []string{}

			for _, c := range parts {
				text.WriteString(c.text)

				if c.set != "" {
					sets = append(sets, c.set)
				}
			}

			out[i] = Result{Text: text.String(), Variants: sets}
		}

		return out, nil
	})
}

// candidates returns the choices for a variant marker with the given text.
// Substitutes take an upper-case first letter when the marker has one.
func (b *build) candidates(word string) ([]candidate, error) {
	lower := strings.ToLower(word)
	upper := firstRune(lower) != firstRune(word)

	cands := []candidate{{text: word}}

	for _, name := range b.variants.Names() {
		repl, err := b.variants.Replacements(name, lower)
		if err != nil {
			return nil, err
		}

		for _, r := range repl {
			if upper {
				r = upperFirst(r)
			}

			cands = append(cands, candidate{text: r, set: name})
		}
	}

	return cands, nil
}
