package phrase

import (
	"context"
	"strings"
)

// expandAlternatives fans out every [a|b|c] group.
func expandAlternatives(ctx context.Context, phrases []string, b budget) ([]string, error) {
	return fanOut(ctx, phrases, b, func(p string) ([]string, error) {
		groups := scanDelimited(p, '[', ']')
		if len(groups) == 0 {
			return []string{p}, nil
		}

		segments := make([][]string, 0, 2*len(groups)+1)
		last := 0

		for _, g := range groups {
			segments = append(segments,
				[]string{p[last:g.start]},
				alternatives(p[g.start+1:g.end-1]),
			)
			last = g.end
		}

		segments = append(segments, []string{p[last:]})

		joined, err := product(ctx, segments, b)
		if err != nil {
			return nil, err
		}

		out := make([]string, len(joined))
		for i, parts := range joined {
			out[i] = strings.Join(parts, "")
		}

		return out, nil
	})
}

// alternatives splits the body of an alternative group. Empty alternatives
// are dropped, the rest are trimmed, and a $name alternative becomes the
// token {$name}.
func alternatives(body string) []string {
	var alts []string

	for _, a := range splitUnescaped(body, '|') {
		if a == "" {
			continue
		}

		a = strings.TrimSpace(a)
		if strings.HasPrefix(a, "$") {
			a = "{" + a + "}"
		}

		alts = append(alts, a)
	}

	return alts
}
