package modifier

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"
)

// programs caches compiled expressions keyed by the xxh3 hash of their
// source text.
//
//nolint:gochecknoglobals
var programs sync.Map

// evalExpr evaluates its arguments as an expr-lang expression.
//
// Template arguments are split on ':', so the arguments are rejoined with ':'
// to recover the original source. The environment binds:
//
//	value  the token value (or the condition value in predicate position)
//	index  the token's byte offset in its phrase, or -1 in predicate position
func evalExpr(ctx *Context, value any, args ...any) (any, error) {
	part := make([]string, len(args))
	for i, a := range args {
		part[i] = Format(a)
	}

	source := strings.TrimSpace(strings.Join(part, ":"))
	if source == "" {
		return value, nil
	}

	program, err := compileExpr(source)
	if err != nil {
		return nil, err
	}

	index := -1
	if ctx != nil {
		index = ctx.Index
	}

	result, err := vm.Run(program, map[string]any{
		"value": value,
		"index": index,
	})
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).
			With(slog.String("source", source))
	}

	return result, nil
}

func compileExpr(source string) (*vm.Program, error) {
	key := xxh3.HashString(source)

	if p, ok := programs.Load(key); ok {
		return p.(*vm.Program), nil //nolint:forcetypeassert
	}

	program, err := expr.Compile(source)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("source", source))
	}

	p, _ := programs.LoadOrStore(key, program)

	return p.(*vm.Program), nil //nolint:forcetypeassert
}
