package phrase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Call is a named modifier invocation within a token, e.g. "join:, ".
type Call struct {
	Name string
	Args []string
}

// Token is a parsed [!]{name[=default][|mod[:arg]...]}[shorthand] marker.
type Token struct {
	// Mandatory tokens drop their result when left unresolved.
	Mandatory bool
	// Variable is a $-prefixed dotted path or a literal value.
	Variable string
	// Default is used when the variable is undefined. Nil if absent.
	Default *string
	// Modifiers are the named modifier calls, applied in order.
	Modifiers []Call
	// Shorthands are the characters trailing the closing brace.
	Shorthands []rune
	// Match is the complete marker text.
	Match string
	// Index is the byte offset of Match in the phrase it was found in.
	Index int

	bound bool
	value any
}

// Literal reports whether the token names a literal value rather than a
// variable path.
func (t Token) Literal() bool { return !strings.HasPrefix(t.Variable, "$") }

// bind returns a copy of t whose value is v regardless of Variable.
func (t Token) bind(v any) *Token {
	t.bound = true
	t.value = v

	return &t
}

// segment is a run of plain text or a single token.
type segment struct {
	text  string
	token *Token
}

// scanTokens locates the tokens of s in order.
func scanTokens(s string) []Token {
	var found []Token

	for i := 0; i < len(s); {
		k := strings.IndexByte(s[i:], '{')
		if k < 0 {
			break
		}

		k += i

		t, end, ok := matchToken(s, k, i)
		if !ok {
			i = k + 1

			continue
		}

		found = append(found, t)
		i = end
	}

	return found
}

// matchToken parses the token whose opening brace is s[k]. A '!' at s[k-1]
// marks the token mandatory unless it precedes from, the scan position.
func matchToken(s string, k, from int) (Token, int, bool) {
	if escaped(s, k) {
		return Token{}, 0, false
	}

	j := strings.IndexByte(s[k+1:], '}')
	if j < 0 {
		return Token{}, 0, false
	}

	closing := k + 1 + j
	if escaped(s, closing) {
		return Token{}, 0, false
	}

	namePart, mods, _ := strings.Cut(s[k+1:closing], "|")
	if namePart == "" {
		return Token{}, 0, false
	}

	t := Token{Index: k}
	if k-1 >= from && s[k-1] == '!' {
		t.Mandatory = true
		t.Index = k - 1
	}

	name, rest, hasDefault := strings.Cut(namePart, "=")
	t.Variable = name

	if hasDefault {
		def, _, _ := strings.Cut(rest, "=")
		t.Default = &def
	}

	if mods != "" {
		for spec := range strings.SplitSeq(mods, "|") {
			name, args := parseCall(spec)
			t.Modifiers = append(t.Modifiers, Call{Name: name, Args: args})
		}
	}

	end := closing + 1
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if unicode.IsSpace(r) || r == '{' {
			break
		}

		t.Shorthands = append(t.Shorthands, r)
		end += size
	}

	t.Match = s[t.Index:end]

	return t, end, true
}

// segmentPhrase splits p into text runs and tokens.
func segmentPhrase(p string) []segment {
	var (
		segs []segment
		last int
	)

	for _, t := range scanTokens(p) {
		if t.Index > last {
			segs = append(segs, segment{text: p[last:t.Index]})
		}

		segs = append(segs, segment{token: &t})
		last = t.Index + len(t.Match)
	}

	if last < len(p) || len(segs) == 0 {
		segs = append(segs, segment{text: p[last:]})
	}

	return segs
}
