// Package cmd implements the phrasegen subcommands: build, modifiers,
// variants and repl.
//
// Input files named on the command line are looked up as given, then in
// each directory of the search path stored in the command context by
// [WithSearchPath].
package cmd

import (
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/phrasegen/phrase"
)

const (
	// HistoryIdentifier is the kong variable holding the default REPL
	// history file path.
	HistoryIdentifier = "history"

	// MaxExpansionsIdentifier is the kong variable holding the default
	// expansion limit of a build.
	MaxExpansionsIdentifier = "maxExpansions"
)

// Vars returns the kong variables referenced by the command flags.
// cacheDir is the directory the REPL history is kept in.
func Vars(cacheDir string) kong.Vars {
	return kong.Vars{
		HistoryIdentifier:       filepath.Join(cacheDir, "history.utf8"),
		MaxExpansionsIdentifier: strconv.Itoa(phrase.DefaultMaxExpansions),
	}
}
