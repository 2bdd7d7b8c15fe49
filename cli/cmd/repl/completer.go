package repl

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/phrasegen/modifier"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "modifiers", "variants", "vars", "edit", "clear", "quit",
}

// completion is the kind of name expected at the cursor.
type completion int

const (
	completeNone completion = iota
	completeModifier
	completeBinding
	completeCommand
)

// isWordRune reports whether r may appear in a completed name. Modifier names
// and binding path elements share this alphabet.
func isWordRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the name at the cursor position and its byte boundaries
// within input. The word is empty when the cursor sits between delimiters.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// insideBraces reports whether offset i of input follows an opening brace
// that is not yet closed.
func insideBraces(input string, i int) bool {
	prefix := input[:i]

	return strings.LastIndexByte(prefix, '{') > strings.LastIndexByte(prefix, '}')
}

// templateContext classifies the word of a template beginning at wordStart.
// For a binding path, parent is the dotted path leading to the word, e.g.
// "user" for "{$user.na".
func templateContext(input string, wordStart int) (kind completion, parent string) {
	// Step back over the path elements preceding the word.
	p := wordStart
	for p > 0 && input[p-1] == '.' {
		_, s, _ := wordBounds(input, p-1)
		if s == p-1 {
			break
		}

		p = s
	}

	if p == 0 {
		return completeNone, ""
	}

	switch input[p-1] {
	case '$':
		return completeBinding, strings.TrimSuffix(input[p:wordStart], ".")

	case '|', '&':
		if p == wordStart && insideBraces(input, p) {
			return completeModifier, ""
		}
	}

	return completeNone, ""
}

// bindingNames returns the names of the children of the binding at the
// dotted path parent, or of the top-level bindings if parent is empty.
func bindingNames(vars map[string]any, parent string) []string {
	var node any = vars

	if parent != "" {
		for elem := range strings.SplitSeq(parent, ".") {
			node = child(node, elem)
		}
	}

	switch n := node.(type) {
	case map[string]any:
		names := make([]string, 0, len(n))
		for k := range n {
			names = append(names, k)
		}

		slices.Sort(names)

		return names

	case []any:
		names := make([]string, len(n))
		for i := range n {
			names[i] = strconv.Itoa(i)
		}

		return names
	}

	return nil
}

func child(node any, elem string) any {
	switch n := node.(type) {
	case map[string]any:
		return n[elem]

	case []any:
		if i, err := strconv.Atoi(elem); err == nil && i >= 0 && i < len(n) {
			return n[i]
		}
	}

	return nil
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word only lists candidates directly after a '$', a '.'
// of a binding path, or a modifier separator.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	kind := completeCommand
	if m.mode == modeTemplate {
		var parent string

		kind, parent = templateContext(input, wordStart)

		switch kind {
		case completeBinding:
			candidates = bindingNames(m.session.Bindings, parent)
		case completeModifier:
			candidates = m.session.Modifiers.Names()
		}
	} else {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	}

	if kind == completeNone || len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	if word == "" {
		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, candidates, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// currentCall returns the name of the modifier call under the cursor of a
// template, such as "join" for "{$a|join:, " with the cursor after the
// separator.
func currentCall(input string, cursor int) (string, bool) {
	cursor = min(max(cursor, 0), len(input))
	if !insideBraces(input, cursor) {
		return "", false
	}

	open := strings.LastIndexByte(input[:cursor], '{')

	bar := strings.LastIndexAny(input[open:cursor], "|&")
	if bar < 0 {
		return "", false
	}

	start := open + bar + 1

	end := strings.IndexAny(input[start:], ":|&}")
	if end < 0 {
		end = len(input) - start
	}

	name := strings.TrimSpace(input[start : start+end])

	return name, name != ""
}

// modifierHint describes the modifier called under the cursor, if any.
func modifierHint(reg *modifier.Registry, input string, cursor int) string {
	name, ok := currentCall(input, cursor)
	if !ok {
		return ""
	}

	mod, ok := reg.Lookup(name)
	if !ok {
		return ""
	}

	return renderModifierHint(mod)
}

func renderModifierHint(mod modifier.Modifier) string {
	name := hintNameStyle.Render(mod.Name)
	if mod.HasShorthand() {
		name += hintStyle.Render(" (" + string(mod.Shorthand) + ")")
	}

	return name + hintStyle.Render(": "+mod.Description)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	var (
		b        strings.Builder
		used     int
		ellipsis = hintStyle.Render("...")
		reserve  = lipgloss.Width(sep) + lipgloss.Width(ellipsis)
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(matches)-1
		if i > 0 && (used+w > width || (!last && used+w+reserve > width)) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
