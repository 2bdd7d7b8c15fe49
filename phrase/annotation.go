package phrase

import "strings"

// extractAnnotations removes every unescaped @name from each result's text
// and records the names, in order, as the result's annotations.
func extractAnnotations(results []Result) []Result {
	for i, r := range results {
		var (
			text  strings.Builder
			notes = []string{}
		)

		s := r.Text
		for j := 0; j < len(s); {
			if s[j] != '@' || escaped(s, j) {
				text.WriteByte(s[j])
				j++

				continue
			}

			end := j + 1
			for end < len(s) && isAnnotation(s[end]) {
				end++
			}

			if end == j+1 {
				text.WriteByte(s[j])
				j++

				continue
			}

			notes = append(notes, s[j+1:end])
			j = end
		}

		results[i].Text = normalizeSpace(text.String())
		results[i].Annotations = notes
	}

	return results
}

func isAnnotation(c byte) bool { return isIdent(c) || c == '-' }
