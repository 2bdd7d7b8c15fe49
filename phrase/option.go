package phrase

import (
	"github.com/ardnew/phrasegen/log"
	"github.com/ardnew/phrasegen/modifier"
	"github.com/ardnew/phrasegen/variant"
)

// DefaultMaxExpansions is the default bound on the number of working phrases
// any stage of a build may hold.
// Users may modify this before constructing templates to change the default.
var DefaultMaxExpansions = 1_000_000

// options holds Template configuration.
type options struct {
	modifiers     *modifier.Registry
	variantReg    *variant.Registry
	variants      variant.Dictionary
	maxExpansions int
	logger        log.Logger
	metrics       Metrics
}

// Option configures a Template.
type Option func(*options)

// WithModifiers sets the registry modifiers are looked up in at build time.
// The default is [modifier.Default].
func WithModifiers(reg *modifier.Registry) Option {
	return func(o *options) {
		o.modifiers = reg
	}
}

// WithVariantRegistry sets the base variant registry, snapshotted once when
// the template is constructed. The default is [variant.Default].
func WithVariantRegistry(reg *variant.Registry) Option {
	return func(o *options) {
		o.variantReg = reg
	}
}

// WithVariants deep-merges d over the base variant dictionary for this
// template only. Multiple calls merge in order.
func WithVariants(d variant.Dictionary) Option {
	return func(o *options) {
		o.variants = o.variants.Merge(d)
	}
}

// WithMaxExpansions bounds the number of working phrases a build may hold.
// Builds exceeding it fail with [ErrExpansionLimitExceeded]. Zero or a
// negative value removes the bound.
func WithMaxExpansions(n int) Option {
	return func(o *options) {
		o.maxExpansions = n
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the recorder that receives build measurements.
// The default is [NoopMetrics].
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// applyDefaults sets default option values.
func applyDefaults(o *options) {
	o.maxExpansions = DefaultMaxExpansions
	o.metrics = NoopMetrics{}
}

// applyOptions applies functional options.
func applyOptions(o *options, opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}
