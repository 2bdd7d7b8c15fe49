package phrase

import (
	"strings"

	"github.com/ardnew/phrasegen/modifier"
)

// invocation is a modifier ready to be applied to a token value.
type invocation struct {
	modifier.Modifier

	args []any
}

// resolve renders each segmented phrase into text.
func (b *build) resolve(phrases [][]segment) ([]string, error) {
	return fanOut(b.ctx, phrases, b.budget, func(segs []segment) ([]string, error) {
		var out strings.Builder

		for _, s := range segs {
			if s.token == nil {
				out.WriteString(s.text)

				continue
			}

			text, err := b.resolveToken(s.token)
			if err != nil {
				return nil, err
			}

			out.WriteString(text)
		}

		return []string{out.String()}, nil
	})
}

// resolveToken returns the text a token renders to. An undefined variable
// without a default renders as the token's own match text. Bound $paths in a
// literal are replaced with their text after the token is parsed, so bound
// values are never read as token syntax.
func (b *build) resolveToken(t *Token) (string, error) {
	var value any

	switch {
	case t.bound:
		value = t.value
	case t.Literal():
		value = substitute(t.Variable, b.vars)
	default:
		v, ok := lookup(b.vars, t.Variable[1:])
		if !ok {
			if t.Default == nil {
				return t.Match, nil
			}

			v = *t.Default
		}

		value = v
	}

	calls, trailing, err := b.invocations(t)
	if err != nil {
		return "", err
	}

	ctx := &modifier.Context{Match: t.Match, Index: t.Index}

	for _, c := range calls {
		value, err = c.Func(ctx, value, c.args...)
		if err != nil {
			return "", errModifierFailed(err, c.Name, t.Match)
		}
	}

	return modifier.Format(value) + trailing, nil
}

// invocations looks up the named modifiers of t followed by its shorthand
// modifiers. Shorthand characters with no modifier, and any character
// following a backslash, are returned as trailing text.
func (b *build) invocations(t *Token) ([]invocation, string, error) {
	calls := make([]invocation, 0, len(t.Modifiers)+len(t.Shorthands))

	for _, c := range t.Modifiers {
		m, ok := b.modifiers.Lookup(c.Name)
		if !ok {
			return nil, "", errModifierNotFound(b.modifiers, c.Name, t.Match)
		}

		calls = append(calls, invocation{Modifier: m, args: b.args(c.Args)})
	}

	var (
		trailing strings.Builder
		literal  bool
	)

	for _, r := range t.Shorthands {
		if literal {
			trailing.WriteRune(r)
			literal = false

			continue
		}

		if r == '\\' {
			literal = true

			continue
		}

		m, ok := b.shorthands[r]
		if !ok {
			trailing.WriteRune(r)

			continue
		}

		calls = append(calls, invocation{Modifier: m})
	}

	return calls, trailing.String(), nil
}

// args converts modifier arguments, replacing each $path argument with its
// bound value (nil if undefined).
func (b *build) args(raw []string) []any {
	args := make([]any, len(raw))

	for i, a := range raw {
		if path, ok := strings.CutPrefix(a, "$"); ok {
			args[i], _ = lookup(b.vars, path)

			continue
		}

		args[i] = a
	}

	return args
}
