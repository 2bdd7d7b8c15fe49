// Package phrase expands compact phrase templates into every concrete text
// they denote.
//
// # Syntax
//
//	[a|b|c]              alternatives; each fans out a new phrase
//	[a|$name]            an alternative may reference a variable
//	{$path}              variable interpolation (dotted path into bindings)
//	{$path=default}      default used when the variable is undefined
//	{literal}            literal text, useful with modifiers
//	{$path|mod:arg|...}  named modifier chain; "$" arguments are resolved
//	{$path}sC            shorthand modifiers following the closing brace
//	!{$path}             mandatory: drop the phrase if it stays unresolved
//	?{$v|p:a&q}{then}{else}
//	                     conditional; predicates joined by | (or) and & (and)
//	#Word#               lexical variants from the variant dictionary
//	@name                annotation, removed from the text and reported
//
// A backslash before any of @ # { } [ ] | keeps it literal.
//
// # Pipeline
//
// [Template.Build] runs the stages in a fixed order, each consuming and
// producing an ordered list of working phrases:
//
//  1. alternatives fan out
//  2. conditionals select a branch
//  3. tokens are segmented
//  4. bare list variables fan out
//  5. tokens resolve and run their modifiers
//  6. variants fan out
//  7. annotations are extracted
//  8. escapes are restored and unresolved mandatory phrases are dropped
//
// Every fan-out follows the same cartesian order: the rightmost marker varies
// fastest. The total number of working phrases is bounded by
// [WithMaxExpansions].
//
// # Example
//
//	t := phrase.New().With([]string{"[Hi|Hello] {$name}C!"})
//	text, _ := t.Text(ctx, map[string]any{"name": []string{"ann", "bo"}})
//	// [Hi Ann! Hi Bo! Hello Ann! Hello Bo!]
package phrase
