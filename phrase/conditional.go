package phrase

import (
	"strings"

	"github.com/ardnew/phrasegen/modifier"
)

// conditional is a ?{condition|chain}{then}{else} block located in a phrase.
// The branches keep their braces so the chosen branch is later resolved as a
// token, unaltered.
type conditional struct {
	span

	match     string
	condition string
	chain     string
	then      string
	otherwise string
}

// predicate is one link of a conditional's predicate chain.
type predicate struct {
	and  bool // joined with '&' rather than '|'
	name string
	args []string
}

// scanConditionals locates the conditional blocks of s in order.
func scanConditionals(s string) []conditional {
	var found []conditional

	for i := 0; i < len(s); {
		k := strings.Index(s[i:], "?{")
		if k < 0 {
			break
		}

		k += i

		c, ok := matchConditional(s, k)
		if !ok {
			i = k + 1

			continue
		}

		found = append(found, c)
		i = c.end
	}

	return found
}

// matchConditional parses the conditional block beginning at s[i], which
// holds "?{".
func matchConditional(s string, i int) (conditional, bool) {
	head := i + len("?{")

	j := strings.IndexByte(s[head:], '}')
	if j < 0 {
		return conditional{}, false
	}

	cond, chain, _ := strings.Cut(s[head:head+j], "|")
	if cond == "" {
		return conditional{}, false
	}

	thenStart := head + j + 1

	thenEnd, ok := braced(s, thenStart)
	if !ok {
		return conditional{}, false
	}

	c := conditional{
		span:      span{start: i, end: thenEnd},
		condition: cond,
		chain:     chain,
		then:      s[thenStart:thenEnd],
	}

	if elseEnd, ok := braced(s, thenEnd); ok {
		c.otherwise = s[thenEnd:elseEnd]
		c.end = elseEnd
	}

	c.match = s[c.start:c.end]

	return c, true
}

// braced returns the index just past a non-empty {...} group starting at
// s[i].
func braced(s string, i int) (int, bool) {
	if i >= len(s) || s[i] != '{' {
		return 0, false
	}

	j := strings.IndexByte(s[i+1:], '}')
	if j <= 0 {
		return 0, false
	}

	return i + 1 + j + 1, true
}

// parseChain splits a predicate chain such as "eq:a&includes:b|gt:3".
// The first predicate is joined with '|'.
func parseChain(chain string) []predicate {
	var (
		preds []predicate
		and   bool
	)

	for len(chain) > 0 {
		k := strings.IndexAny(chain, "|&")
		if k < 0 {
			k = len(chain)
		}

		if spec := strings.TrimSpace(chain[:k]); spec != "" {
			name, args := parseCall(spec)
			preds = append(preds, predicate{and: and, name: name, args: args})
		}

		if k == len(chain) {
			break
		}

		and = chain[k] == '&'
		chain = chain[k+1:]
	}

	return preds
}

// parseCall splits "name:arg:arg" into its name and arguments.
func parseCall(spec string) (string, []string) {
	part := strings.Split(spec, ":")

	return part[0], part[1:]
}

// resolveConditionals replaces every conditional block with its selected
// branch and normalizes whitespace.
func (b *build) resolveConditionals(phrases []string) ([]string, error) {
	return fanOut(b.ctx, phrases, b.budget, func(p string) ([]string, error) {
		var out strings.Builder

		last := 0

		for _, c := range scanConditionals(p) {
			ok, err := b.evaluate(c)
			if err != nil {
				return nil, err
			}

			branch := c.otherwise
			if ok {
				branch = c.then
			}

			out.WriteString(p[last:c.start])
			out.WriteString(branch)
			last = c.end
		}

		out.WriteString(p[last:])

		return []string{normalizeSpace(out.String())}, nil
	})
}

// evaluate reports whether the condition of c holds. Without a predicate
// chain the condition value's truthiness decides. Otherwise the chain folds
// from false: '|' links OR their result, '&' links AND it.
func (b *build) evaluate(c conditional) (bool, error) {
	var value any = c.condition
	if path, ok := strings.CutPrefix(c.condition, "$"); ok {
		value, _ = lookup(b.vars, path)
	}

	preds := parseChain(c.chain)
	if len(preds) == 0 {
		return modifier.Truthy(value), nil
	}

	mods := make([]modifier.Modifier, len(preds))

	for i, p := range preds {
		m, ok := b.modifiers.Lookup(p.name)
		if !ok {
			return false, errModifierNotFound(b.modifiers, p.name, c.match)
		}

		mods[i] = m
	}

	var result bool

	for i, p := range preds {
		args := make([]any, len(p.args))
		for j, a := range p.args {
			args[j] = a
		}

		r, err := mods[i].Func(nil, value, args...)
		if err != nil {
			return false, errModifierFailed(err, p.name, c.match)
		}

		if p.and {
			result = result && modifier.Truthy(r)
		} else {
			result = result || modifier.Truthy(r)
		}
	}

	return result, nil
}
