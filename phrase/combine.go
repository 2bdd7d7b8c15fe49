package phrase

import (
	"log/slog"
	"slices"
	"strings"
)

// combine joins phrase groups left to right. Each accumulated phrase is
// followed by each phrase of the next group, separated by a space, except
// that a phrase beginning with '^' stands alone with the marker removed.
// Duplicates are removed, keeping the first occurrence.
func combine(groups [][]string) []string {
	if len(groups) == 1 {
		return slices.Clone(groups[0])
	}

	acc := slices.Clone(groups[0])

	for _, group := range groups[1:] {
		next := make([]string, 0, len(acc)*len(group))

		for _, prev := range acc {
			for _, p := range group {
				if solo, ok := strings.CutPrefix(p, "^"); ok {
					next = append(next, solo)
				} else {
					next = append(next, prev+" "+p)
				}
			}
		}

		acc = next
	}

	return dedupe(acc)
}

// dedupe removes repeated phrases in place, keeping the first occurrence.
func dedupe(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))

	return slices.DeleteFunc(phrases, func(p string) bool {
		if _, ok := seen[p]; ok {
			return true
		}

		seen[p] = struct{}{}

		return false
	})
}

// phraseGroup converts a dynamically typed phrase group.
func phraseGroup(group any) ([]string, error) {
	switch g := group.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{g}, nil
	case []string:
		return g, nil
	case []any:
		out := make([]string, len(g))

		for i, e := range g {
			s, ok := e.(string)
			if !ok {
				return nil, ErrInvalidPhraseType.With(
					slog.Int("index", i),
					slog.Any("phrase", e),
				)
			}

			out[i] = s
		}

		return out, nil
	}

	return nil, ErrInvalidPhraseType.With(slog.Any("phrase", group))
}
