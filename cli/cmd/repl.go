package cmd

import (
	"context"

	"github.com/ardnew/phrasegen/cli/cmd/repl"
	"github.com/ardnew/phrasegen/log"
	"github.com/ardnew/phrasegen/modifier"
)

// Repl starts an interactive template previewer.
type Repl struct {
	Inputs `embed:""`

	Max     int    `default:"${maxExpansions}" help:"Maximum working phrases, or 0 for no limit."`
	History string `default:"${history}"       help:"History file, or empty to disable history." placeholder:"FILE" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	vars, err := r.bindings(ctx)
	if err != nil {
		return err
	}

	dict, err := r.variants(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, repl.Session{
		Bindings:      vars,
		Variants:      dict,
		Modifiers:     modifier.Default(),
		MaxExpansions: r.Max,
		Logger:        log.Default(),
	}, r.History)
}
