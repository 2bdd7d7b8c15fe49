package cmd

import (
	"context"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/phrasegen/variant"
)

// Variants prints the variant dictionary a build would use.
type Variants struct {
	Variants []string `help:"Variant dictionary file(s) merged over the built-in sets." placeholder:"FILE" short:"V"`
}

// Run executes the variants command.
func (v *Variants) Run(ctx context.Context) error {
	in := Inputs{Variants: v.Variants}

	dict, err := in.variants(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(variant.Default().Snapshot().Merge(dict))
	if err != nil {
		return ErrWriteResults.Wrap(err)
	}

	if _, err := stdout(ctx).Write(data); err != nil {
		return ErrWriteResults.Wrap(err)
	}

	return nil
}
