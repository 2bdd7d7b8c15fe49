// Package modifier provides the named value transformers that phrase
// templates apply to resolved tokens and to conditional predicates.
//
// A modifier is a [Func] registered in a [Registry] under a unique name and,
// optionally, a single shorthand character:
//
//	reg := modifier.Default()
//	_ = reg.Register("shout", "Append an exclamation mark", shout, '!')
//
// Templates invoke modifiers in two positions:
//
//   - Token position, as a named chain ({$word|plural|capitalize}) or as
//     shorthand characters after the closing brace ({$word}sC). The [Context]
//     describes the token being resolved.
//   - Predicate position, inside a conditional (?{$word|plural}{...}). The
//     [Context] is nil and the result is interpreted by [Truthy].
//
// Modifiers that behave differently in the two positions check for a nil
// context, as the builtin plural and singular modifiers do.
//
// # Builtins
//
// [Default] returns a registry pre-populated with the builtin modifiers:
//
//	capitalize (C)  lowercase (l)  uppercase (U)  plural (s)  singular
//	space (_)       join           eq             neq         gt
//	lt              includes       match          expr
package modifier
