package modifier

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
)

// inflect is the shared pluralization client. Constructing a client
// compiles its rule tables, so it is built once on first use.
//
//nolint:gochecknoglobals
var inflect = sync.OnceValue(pluralize.NewClient)

// joinSerial matches a join separator that requests a serial list
// ("a, b and c").
var joinSerial = regexp.MustCompile(`,\s*$`)

func builtins() []Modifier {
	return []Modifier{
		{
			Name:        "capitalize",
			Description: "Make the first letter upper case. With a truthy argument, only when the token begins the phrase.",
			Func:        capitalize,
			Shorthand:   'C',
		},
		{
			Name:        "lowercase",
			Description: "Make every letter lower case.",
			Func:        lowercase,
			Shorthand:   'l',
		},
		{
			Name:        "uppercase",
			Description: "Make every letter upper case.",
			Func:        uppercase,
			Shorthand:   'U',
		},
		{
			Name:        "plural",
			Description: "Transform to plural form, or to singular form if the count argument is 1. As a predicate, test whether the value is plural.",
			Func:        plural,
			Shorthand:   's',
		},
		{
			Name:        "singular",
			Description: "Transform to singular form. As a predicate, test whether the value is singular.",
			Func:        singular,
		},
		{
			Name:        "space",
			Description: "Transform snake_case, camelCase, or kebab-case to space case.",
			Func:        space,
			Shorthand:   '_',
		},
		{
			Name:        "join",
			Description: "Join a list with the separator argument. A separator ending in a comma joins the last item with \"and\".",
			Func:        join,
		},
		{
			Name:        "eq",
			Description: "Test equal to the argument.",
			Func:        eq,
		},
		{
			Name:        "neq",
			Description: "Test not equal to the argument.",
			Func:        neq,
		},
		{
			Name:        "gt",
			Description: "Test greater than the argument.",
			Func:        gt,
		},
		{
			Name:        "lt",
			Description: "Test less than the argument.",
			Func:        lt,
		},
		{
			Name:        "includes",
			Description: "Test whether a list contains the argument, or a string matches the argument pattern.",
			Func:        includes,
		},
		{
			Name:        "match",
			Description: "Test whether the value matches the regular expression argument, with optional flags (i, m, s).",
			Func:        match,
		},
		{
			Name:        "expr",
			Description: "Evaluate the argument as an expr-lang expression with the token value bound to `value`.",
			Func:        evalExpr,
		},
	}
}

func capitalize(ctx *Context, value any, args ...any) (any, error) {
	s := Format(value)
	if Truthy(arg(args, 0)) && !ctx.AtStart() {
		return s, nil
	}

	return upperFirst(s), nil
}

func lowercase(_ *Context, value any, _ ...any) (any, error) {
	return strings.ToLower(Format(value)), nil
}

func uppercase(_ *Context, value any, _ ...any) (any, error) {
	return strings.ToUpper(Format(value)), nil
}

func plural(ctx *Context, value any, args ...any) (any, error) {
	word := Format(value)

	if ctx == nil {
		return word == inflect().Plural(word), nil
	}

	count := arg(args, 0)
	if count == nil {
		return inflect().Plural(word), nil
	}

	n, ok := parseNumber(count)
	if !ok {
		return nil, ErrInvalidArgument.With(
			slog.String("modifier", "plural"),
			slog.String("count", Format(count)),
			slog.String("reason", "count must be a number"),
		)
	}

	if n == 1 {
		return inflect().Singular(word), nil
	}

	return inflect().Plural(word), nil
}

func singular(ctx *Context, value any, _ ...any) (any, error) {
	word := Format(value)

	if ctx == nil {
		return word == inflect().Singular(word), nil
	}

	return inflect().Singular(word), nil
}

func space(ctx *Context, value any, _ ...any) (any, error) {
	word := Format(value)
	spaced := strcase.ToDelimited(word, ' ')

	if ctx.AtStart() && word != "" && upperFirst(word) == word {
		return upperFirst(spaced), nil
	}

	return spaced, nil
}

func join(_ *Context, value any, args ...any) (any, error) {
	list, ok := List(value)
	if !ok {
		return nil, ErrInvalidValue.With(
			slog.String("modifier", "join"),
			slog.String("reason", "can only join list values"),
		)
	}

	switch len(list) {
	case 0:
		return "", nil
	case 1:
		return list[0], nil
	}

	part := make([]string, len(list))
	for i, e := range list {
		part[i] = Format(e)
	}

	a := arg(args, 0)
	if a == nil {
		return strings.Join(part, ","), nil
	}

	sep := Format(a)
	if joinSerial.MatchString(sep) {
		last := len(part) - 1

		return strings.Join(part[:last], ", ") + " and " + part[last], nil
	}

	return strings.Join(part, sep), nil
}

func eq(_ *Context, value any, args ...any) (any, error) {
	a := arg(args, 0)
	s := Format(a)

	switch v := value.(type) {
	case nil:
		return s == "", nil
	case bool:
		if v {
			return s == "true" || s == "yes", nil
		}

		return s == "false" || s == "no" || s == "", nil
	}

	if n, ok := number(value); ok {
		m, ok := parseNumber(a)

		return ok && n == m, nil
	}

	return Format(value) == s, nil
}

func neq(ctx *Context, value any, args ...any) (any, error) {
	equal, err := eq(ctx, value, args...)
	if err != nil {
		return nil, err
	}

	return !Truthy(equal), nil
}

// compare orders value against the first argument. Numeric values compare
// numerically, everything else compares as text. ok is false when the two
// cannot be ordered.
func compare(value any, args []any) (cmp int, ok bool) {
	if value == nil {
		return 0, false
	}

	if n, isNum := number(value); isNum {
		m, isNum := parseNumber(arg(args, 0))
		if !isNum {
			return 0, false
		}

		switch {
		case n < m:
			return -1, true
		case n > m:
			return 1, true
		default:
			return 0, true
		}
	}

	return strings.Compare(Format(value), Format(arg(args, 0))), true
}

func gt(_ *Context, value any, args ...any) (any, error) {
	cmp, ok := compare(value, args)

	return ok && cmp > 0, nil
}

func lt(_ *Context, value any, args ...any) (any, error) {
	cmp, ok := compare(value, args)

	return ok && cmp < 0, nil
}

func includes(_ *Context, value any, args ...any) (any, error) {
	want := Format(arg(args, 0))

	if list, ok := List(value); ok {
		for _, e := range list {
			if Format(e) == want {
				return true, nil
			}
		}

		return false, nil
	}

	s, ok := value.(string)
	if !ok {
		return false, nil
	}

	re, err := regexp.Compile(want)
	if err != nil {
		return nil, ErrInvalidArgument.Wrap(err).With(
			slog.String("modifier", "includes"),
			slog.String("pattern", want),
		)
	}

	return re.MatchString(s), nil
}

func match(_ *Context, value any, args ...any) (any, error) {
	pattern := Format(arg(args, 0))

	var flags strings.Builder

	for _, f := range Format(arg(args, 1)) {
		switch f {
		case 'i', 'm', 's':
			flags.WriteRune(f)
		case 'g', 'u', 'y':
			// No effect on a single match test.
		default:
			return nil, ErrInvalidArgument.With(
				slog.String("modifier", "match"),
				slog.String("flags", Format(arg(args, 1))),
			)
		}
	}

	if flags.Len() > 0 {
		pattern = "(?" + flags.String() + ")" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ErrInvalidArgument.Wrap(err).With(
			slog.String("modifier", "match"),
			slog.String("pattern", pattern),
		)
	}

	return re.MatchString(Format(value)), nil
}
