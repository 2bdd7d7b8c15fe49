package modifier

import (
	"github.com/ardnew/phrasegen/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidRegistration = pkg.NewError("invalid modifier registration")
	ErrInvalidArgument     = pkg.NewError("invalid modifier argument")
	ErrInvalidValue        = pkg.NewError("invalid modifier value")
	ErrExprCompile         = pkg.NewError("expression compilation failed")
	ErrExprEvaluate        = pkg.NewError("expression evaluation failed")
)

// Func transforms value, optionally using args, and returns the new value.
//
// ctx is nil when the modifier is invoked as a conditional predicate.
type Func func(ctx *Context, value any, args ...any) (any, error)

// Context describes the template token a modifier is applied to.
type Context struct {
	// Match is the complete text of the token, including braces and any
	// shorthand suffix.
	Match string
	// Index is the byte offset of Match within its phrase.
	Index int
}

// AtStart reports whether the token begins its phrase.
// It is false for the nil Context used by predicates.
func (c *Context) AtStart() bool {
	return c != nil && c.Index == 0
}

// Modifier is a registered [Func] with its metadata.
type Modifier struct {
	Name        string
	Description string
	Func        Func
	// Shorthand is the single character that invokes the modifier after a
	// token's closing brace, or 0 if it has none.
	Shorthand rune
}

// HasShorthand reports whether m can be invoked by shorthand.
func (m Modifier) HasShorthand() bool { return m.Shorthand != 0 }
