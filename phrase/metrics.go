package phrase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ardnew/phrasegen/log"
	"github.com/ardnew/phrasegen/pkg"
)

// Metrics records template build measurements.
// Use [NewMetrics] or [DefaultMetrics] for OpenTelemetry metrics, or
// [NoopMetrics] when disabled.
type Metrics interface {
	// RecordStage records the number of working phrases a pipeline stage
	// produced.
	RecordStage(ctx context.Context, stage string, n int)

	// RecordBuild records a completed build: the number of results it
	// returned, the number dropped for unresolved mandatory tokens, its
	// duration, and its error, if any.
	RecordBuild(ctx context.Context, results, filtered int, duration time.Duration, err error)
}

// NoopMetrics discards all measurements.
type NoopMetrics struct{}

// RecordStage does nothing.
func (NoopMetrics) RecordStage(context.Context, string, int) {}

// RecordBuild does nothing.
func (NoopMetrics) RecordBuild(context.Context, int, int, time.Duration, error) {}

var (
	_ Metrics = NoopMetrics{}
	_ Metrics = (*otelMetrics)(nil)
)

// otelMetrics implements Metrics using OpenTelemetry instruments.
type otelMetrics struct {
	builds   metric.Int64Counter
	results  metric.Int64Counter
	filtered metric.Int64Counter
	errors   metric.Int64Counter
	latency  metric.Float64Histogram
	phrases  metric.Int64Histogram
}

// NewMetrics returns a Metrics recorder whose instruments are created from
// meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	builds, err := meter.Int64Counter("phrasegen.build.count",
		metric.WithDescription("Number of template builds"),
	)
	if err != nil {
		return nil, err
	}

	results, err := meter.Int64Counter("phrasegen.build.results",
		metric.WithDescription("Number of results returned by template builds"),
	)
	if err != nil {
		return nil, err
	}

	filtered, err := meter.Int64Counter("phrasegen.build.filtered",
		metric.WithDescription("Number of results dropped for unresolved mandatory tokens"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("phrasegen.build.errors",
		metric.WithDescription("Number of failed template builds"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("phrasegen.build.latency_ms",
		metric.WithDescription("Template build latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	phrases, err := meter.Int64Histogram("phrasegen.stage.phrases",
		metric.WithDescription("Number of working phrases produced by a pipeline stage"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		builds:   builds,
		results:  results,
		filtered: filtered,
		errors:   errs,
		latency:  latency,
		phrases:  phrases,
	}, nil
}

// DefaultMetrics returns a Metrics recorder using the global OpenTelemetry
// meter provider. If the instruments cannot be created, it logs a warning
// and returns [NoopMetrics].
//
// Configure the provider before the first call:
//
//	otel.SetMeterProvider(provider)
//
//nolint:gochecknoglobals
var DefaultMetrics = sync.OnceValue(func() Metrics {
	m, err := NewMetrics(otel.Meter(pkg.Name))
	if err != nil {
		log.Warn("metrics initialization failed, using no-op recorder",
			slog.Any("error", err))

		return NoopMetrics{}
	}

	return m
})

func (m *otelMetrics) RecordStage(ctx context.Context, stage string, n int) {
	m.phrases.Record(ctx, int64(n),
		metric.WithAttributes(attribute.String("stage", stage)))
}

func (m *otelMetrics) RecordBuild(
	ctx context.Context,
	results, filtered int,
	duration time.Duration,
	err error,
) {
	success := metric.WithAttributes(attribute.Bool("success", err == nil))

	m.builds.Add(ctx, 1, success)
	m.latency.Record(ctx, float64(duration.Microseconds())/1e3, success)

	if err != nil {
		m.errors.Add(ctx, 1)

		return
	}

	m.results.Add(ctx, int64(results))
	m.filtered.Add(ctx, int64(filtered))
}
