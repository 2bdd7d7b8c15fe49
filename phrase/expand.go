package phrase

import "github.com/ardnew/phrasegen/modifier"

// expandArrays segments each phrase into text and tokens, then fans out
// every bare variable token bound to a list: one phrase per element.
// Tokens carrying named modifiers receive the whole list instead.
func (b *build) expandArrays(phrases []string) ([][]segment, error) {
	return fanOut(b.ctx, phrases, b.budget, func(p string) ([][]segment, error) {
		segs := segmentPhrase(p)

		choices := make([][]segment, len(segs))
		for i, s := range segs {
			choices[i] = b.elements(s)
		}

		return product(b.ctx, choices, b.budget)
	})
}

// elements returns the choices for a single segment.
func (b *build) elements(s segment) []segment {
	t := s.token
	if t == nil || t.Literal() || len(t.Modifiers) > 0 {
		return []segment{s}
	}

	v, ok := lookup(b.vars, t.Variable[1:])
	if !ok {
		return []segment{s}
	}

	list, ok := modifier.List(v)
	if !ok {
		return []segment{s}
	}

	out := make([]segment, len(list))
	for i, e := range list {
		out[i] = segment{token: t.bind(e)}
	}

	return out
}
