package phrase

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/ardnew/phrasegen/log"
	"github.com/ardnew/phrasegen/modifier"
	"github.com/ardnew/phrasegen/variant"
)

// Template is an ordered list of phrase templates and the configuration used
// to expand them.
//
// The variant dictionary is fixed when the template is constructed.
// Modifiers are looked up in the modifier registry each time the template is
// built.
type Template struct {
	phrases []string
	options
}

// New returns an empty template configured with opts.
func New(opts ...Option) *Template {
	t := &Template{}

	applyDefaults(&t.options)
	applyOptions(&t.options, opts...)

	if t.modifiers == nil {
		t.modifiers = modifier.Default()
	}

	if t.variantReg == nil {
		t.variantReg = variant.Default()
	}

	t.variants = t.variantReg.Snapshot().Merge(t.variants)

	return t
}

// With sets the template's phrases. A single group replaces the phrase list.
// Multiple groups are combined: every phrase of each group is appended, with
// a space, to every phrase accumulated from the groups before it. A phrase
// beginning with '^' replaces the accumulated phrase instead of extending it.
// Duplicate combinations are removed. With no groups the template is
// unchanged.
func (t *Template) With(groups ...[]string) *Template {
	if len(groups) > 0 {
		t.phrases = combine(groups)
	}

	return t
}

// WithAny is like [Template.With] for groups given as a string, []string, or
// []any of strings. It returns [ErrInvalidPhraseType] for any other value,
// leaving the template unchanged.
func (t *Template) WithAny(groups ...any) (*Template, error) {
	conv := make([][]string, len(groups))

	for i, g := range groups {
		p, err := phraseGroup(g)
		if err != nil {
			return t, err
		}

		conv[i] = p
	}

	return t.With(conv...), nil
}

// Phrases returns a copy of the template's phrase list.
func (t *Template) Phrases() []string { return slices.Clone(t.phrases) }

// Variants returns the template's variant dictionary.
func (t *Template) Variants() variant.Dictionary { return t.variants.Merge(variant.Dictionary{}) }

// build holds the state of a single expansion.
type build struct {
	ctx        context.Context //nolint:containedctx
	budget     budget
	vars       map[string]any
	modifiers  *modifier.Registry
	shorthands map[rune]modifier.Modifier
	variants   variant.Dictionary
	logger     log.Logger
	metrics    Metrics
}

// Build expands the template with the given variable bindings.
//
// Results are ordered depth-first by marker position: markers further left
// vary slowest. A result still holding an unresolved mandatory !{token} is
// dropped.
func (t *Template) Build(ctx context.Context, vars map[string]any) (results []Result, err error) {
	var (
		start    = time.Now()
		filtered int
	)

	defer func() {
		t.metrics.RecordBuild(ctx, len(results), filtered, time.Since(start), err)

		if err != nil {
			t.logger.DebugContext(ctx, "build failed", slog.Any("error", err))
		}
	}()

	b := &build{
		ctx:        ctx,
		budget:     budget(t.maxExpansions),
		vars:       vars,
		modifiers:  t.modifiers,
		shorthands: t.modifiers.Shorthands(),
		variants:   t.variants,
		logger:     t.logger,
		metrics:    t.metrics,
	}

	if err := b.budget.check(len(t.phrases)); err != nil {
		return nil, err
	}

	phrases, err := stage(b, "alternatives", t.phrases, b.expandAlternatives)
	if err != nil {
		return nil, err
	}

	phrases, err = stage(b, "conditionals", phrases, b.resolveConditionals)
	if err != nil {
		return nil, err
	}

	segmented, err := stage(b, "arrays", phrases, b.expandArrays)
	if err != nil {
		return nil, err
	}

	phrases, err = stage(b, "tokens", segmented, b.resolve)
	if err != nil {
		return nil, err
	}

	results, err = stage(b, "variants", phrases, b.substituteVariants)
	if err != nil {
		return nil, err
	}

	results, err = stage(b, "annotations", results, func(r []Result) ([]Result, error) {
		return extractAnnotations(r), nil
	})
	if err != nil {
		return nil, err
	}

	results, filtered = finalize(results)

	return results, nil
}

// Text is like [Template.Build] but returns only the text of each result.
func (t *Template) Text(ctx context.Context, vars map[string]any) ([]string, error) {
	results, err := t.Build(ctx, vars)
	if err != nil {
		return nil, err
	}

	text := make([]string, len(results))
	for i, r := range results {
		text[i] = r.Text
	}

	return text, nil
}

// expandAlternatives adapts the alternative expander to a build stage.
func (b *build) expandAlternatives(phrases []string) ([]string, error) {
	return expandAlternatives(b.ctx, phrases, b.budget)
}

// stage runs a single pipeline stage, checking for cancellation first and
// recording the number of phrases it produced.
func stage[In, Out any](b *build, name string, in []In, run func([]In) ([]Out, error)) ([]Out, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, err
	}

	out, err := run(in)
	if err != nil {
		return nil, err
	}

	b.logger.TraceContext(b.ctx, "stage",
		slog.String("stage", name),
		slog.Int("in", len(in)),
		slog.Int("out", len(out)),
	)
	b.metrics.RecordStage(b.ctx, name, len(out))

	return out, nil
}
