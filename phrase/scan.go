package phrase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// span locates a marker in a phrase: s[start:end] is the whole marker.
type span struct {
	start, end int
}

// escaped reports whether the byte at s[i] is preceded by a backslash.
func escaped(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

// scanDelimited locates the markers of the form <open>body<close> in s,
// where body is non-empty and contains no close byte. Neither delimiter may
// be escaped. Markers do not overlap; scanning resumes after each marker.
func scanDelimited(s string, open, close byte) []span {
	var found []span

	for i := 0; i < len(s); {
		k := strings.IndexByte(s[i:], open)
		if k < 0 {
			break
		}

		k += i

		if escaped(s, k) {
			i = k + 1

			continue
		}

		j := strings.IndexByte(s[k+1:], close)
		if j < 0 {
			break
		}

		end := k + 1 + j
		if j == 0 || escaped(s, end) {
			i = k + 1

			continue
		}

		found = append(found, span{start: k, end: end + 1})
		i = end + 1
	}

	return found
}

// splitUnescaped splits s on every sep byte not preceded by a backslash and
// unescapes the escaped separators.
func splitUnescaped(s string, sep byte) []string {
	var (
		part []string
		cur  strings.Builder
	)

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == sep:
			cur.WriteByte(sep)
			i++
		case s[i] == sep:
			part = append(part, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}

	return append(part, cur.String())
}

// isIdent reports whether c may appear in a variable name.
func isIdent(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// upperFirst returns s with its first character converted to upper case.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// firstRune returns the first character of s, or utf8.RuneError if s is
// empty.
func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)

	return r
}
