package repl

import "github.com/ardnew/phrasegen/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds    = pkg.NewError("history index out of range")
	ErrEditDeclined   = pkg.NewError("edit declined")
	ErrDecodeBindings = pkg.NewError("decode bindings")
)
