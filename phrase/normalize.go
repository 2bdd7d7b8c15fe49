package phrase

import (
	"regexp"
	"strings"
)

var (
	// unescape restores the characters escaped to suppress marker syntax.
	unescape = strings.NewReplacer(
		`\@`, "@",
		`\#`, "#",
		`\{`, "{",
		`\}`, "}",
		`\[`, "[",
		`\]`, "]",
		`\|`, "|",
	)

	// required matches a mandatory token left unresolved.
	required = regexp.MustCompile(`!\{[^}]+\}`)
)

// normalizeSpace collapses runs of whitespace to a single space and trims
// both ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// finalize drops results holding an unresolved mandatory token, then
// restores escaped characters in the rest.
func finalize(results []Result) (kept []Result, dropped int) {
	kept = results[:0]

	for _, r := range results {
		if required.MatchString(r.Text) {
			dropped++

			continue
		}

		r.Text = strings.TrimSpace(unescape.Replace(r.Text))
		kept = append(kept, r)
	}

	return kept, dropped
}
