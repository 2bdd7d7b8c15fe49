package cmd

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ardnew/phrasegen/log"
	"github.com/ardnew/phrasegen/phrase"
)

// Build expands phrase templates and prints the results.
type Build struct {
	Templates []string `arg:"" help:"Phrase templates. Each is a phrase group." name:"template" optional:""`

	Files []string `help:"Template file(s) with one phrase per line. Each file is a phrase group." placeholder:"FILE" short:"f"`

	Inputs `embed:""`

	Output  string        `default:"text"               enum:"text,json,yaml" help:"Output format (${enum})."                   short:"o"`
	Max     int           `default:"${maxExpansions}"                         help:"Maximum working phrases, or 0 for no limit."`
	Watch   bool          `                                                   help:"Rebuild whenever an input file changes."   short:"w"`
	Quiesce time.Duration `default:"100ms"                                    help:"Delay before rebuilding after a change."   hidden:""`
}

// Run executes the build command.
func (b *Build) Run(ctx context.Context) error {
	w := stdout(ctx)

	if !b.Watch {
		return b.run(ctx, w)
	}

	files, err := b.inputFiles(ctx)
	if err != nil {
		return err
	}

	return watch(ctx, files, b.Quiesce, func() {
		if err := b.run(ctx, w); err != nil {
			log.ErrorContext(ctx, "build failed", slog.Any("error", err))
		}
	})
}

// run performs a single build, logging under a fresh run identifier.
func (b *Build) run(ctx context.Context, w io.Writer) error {
	logger := log.With(slog.String("run", uuid.NewString()))

	results, err := b.build(ctx, logger)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "build finished", slog.Int("results", len(results)))

	return writeResults(w, b.Output, results)
}

func (b *Build) build(ctx context.Context, logger log.Logger) ([]phrase.Result, error) {
	groups, err := b.groups(ctx)
	if err != nil {
		return nil, err
	}

	vars, err := b.bindings(ctx)
	if err != nil {
		return nil, err
	}

	dict, err := b.variants(ctx)
	if err != nil {
		return nil, err
	}

	tmpl := phrase.New(
		phrase.WithVariants(dict),
		phrase.WithMaxExpansions(b.Max),
		phrase.WithLogger(logger),
		phrase.WithMetrics(phrase.DefaultMetrics()),
	).With(groups...)

	logger.DebugContext(ctx, "build start",
		slog.Int("groups", len(groups)),
		slog.Int("phrases", len(tmpl.Phrases())),
		slog.Any("variant_sets", tmpl.Variants().Names()),
	)

	return tmpl.Build(ctx, vars)
}

// groups returns the phrase group of each template file followed by the
// group of each template argument.
func (b *Build) groups(ctx context.Context) ([][]string, error) {
	paths, err := locateAll(ctx, b.Files)
	if err != nil {
		return nil, err
	}

	groups := make([][]string, 0, len(paths)+len(b.Templates))

	for _, path := range paths {
		var phrases []string

		err := readFile(path, func(r io.Reader) (err error) {
			phrases, err = readPhrases(r)

			return err
		})
		if err != nil {
			return nil, ErrReadTemplates.Wrap(err).With(slog.String("path", path))
		}

		if len(phrases) > 0 {
			groups = append(groups, phrases)
		}
	}

	for _, t := range b.Templates {
		groups = append(groups, []string{t})
	}

	if len(groups) == 0 {
		return nil, ErrNoTemplates
	}

	return groups, nil
}

// inputFiles returns every file a build reads, excluding the standard input.
func (b *Build) inputFiles(ctx context.Context) ([]string, error) {
	files, err := locateAll(ctx, b.Files)
	if err != nil {
		return nil, err
	}

	more, err := b.files(ctx)
	if err != nil {
		return nil, err
	}

	var out []string

	for _, f := range append(files, more...) {
		if f != stdinName {
			out = append(out, f)
		}
	}

	return out, nil
}
