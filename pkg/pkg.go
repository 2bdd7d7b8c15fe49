// Package pkg holds the identity of phrasegen: its name, release version and
// authors, along with the per-user directories and environment variables
// derived from that name.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var release string

// Version is the phrasegen release, read from the VERSION file at build time.
var Version = strings.TrimSpace(release)

const (
	// Name identifies the command. It prefixes environment variables, names
	// the config and cache directories, and labels emitted metrics.
	Name = "phrasegen"
	// Description is the one-line summary shown in help output.
	Description = "Phrase template expander"
)

// AuthorInfo identifies a maintainer.
type AuthorInfo struct {
	Name  string
	Email string
}

// String formats a as "Name <Email>", omitting whichever part is empty.
func (a AuthorInfo) String() string {
	switch {
	case a.Email == "":
		return a.Name
	case a.Name == "":
		return "<" + a.Email + ">"
	}

	return a.Name + " <" + a.Email + ">"
}

// Author lists the maintainers of phrasegen.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
