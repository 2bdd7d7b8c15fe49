package phrase

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("meter provider shutdown: %v", err)
		}
	})

	m, err := NewMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	return m, reader
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}

	return nil
}

func sumOf(t *testing.T, rm *metricdata.ResourceMetrics, name string) int64 {
	t.Helper()

	m := findMetric(rm, name)
	if m == nil {
		t.Fatalf("metric %s not recorded", name)
	}

	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %s has data %T", name, m.Data)
	}

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestMetrics_Build(t *testing.T) {
	m, reader := newTestMetrics(t)

	tmpl := New(isolated(WithMetrics(m))...).With([]string{"[a|b] !{$x}", "{$y} c"})
	if _, err := tmpl.Build(t.Context(), map[string]any{"y": "ok"}); err != nil {
		t.Fatal(err)
	}

	if _, err := tmpl.Build(t.Context(), nil); err != nil {
		t.Fatal(err)
	}

	failing := New(isolated(WithMetrics(m))...).With([]string{"{a|nosuchmod}"})
	if _, err := failing.Build(t.Context(), nil); err == nil {
		t.Fatal("expected build error")
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(t.Context(), &rm); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want int64
	}{
		{"phrasegen.build.count", 3},
		{"phrasegen.build.results", 2},
		{"phrasegen.build.filtered", 4},
		{"phrasegen.build.errors", 1},
	}

	for _, tt := range tests {
		if got := sumOf(t, &rm, tt.name); got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, got, tt.want)
		}
	}

	stages := findMetric(&rm, "phrasegen.stage.phrases")
	if stages == nil {
		t.Fatal("stage metric not recorded")
	}

	hist, ok := stages.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("stage metric has data %T", stages.Data)
	}

	// One data point per stage name.
	if len(hist.DataPoints) != 6 {
		t.Errorf("stage data points = %d, want 6", len(hist.DataPoints))
	}

	if findMetric(&rm, "phrasegen.build.latency_ms") == nil {
		t.Error("latency not recorded")
	}
}

func TestNoopMetrics(t *testing.T) {
	var m Metrics = NoopMetrics{}

	m.RecordStage(t.Context(), "tokens", 1)
	m.RecordBuild(t.Context(), 1, 0, 0, nil)
}
