package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	logger := Make(nil)

	if logger.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller != DefaultCaller || logger.pretty != DefaultPretty {
		t.Errorf("caller, pretty = %v, %v", logger.caller, logger.pretty)
	}
}

func TestLogger_Zero(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Trace("trace")
	logger.Error("error", slog.String("key", "value"))
	logger = logger.With(slog.String("key", "value"))

	if logger.Logger != nil {
		t.Error("With on zero Logger returned a non-zero Logger")
	}

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Error("zero Logger does not report defaults")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelTrace, []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelDebug, []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelInfo, []string{"INFO", "WARN", "ERROR"}},
		{LevelError, []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.level), WithPretty(false))
			logger.Trace("m")
			logger.Debug("m")
			logger.Info("m")
			logger.Warn("m")
			logger.Error("m")

			var got []string

			for line := range strings.Lines(buf.String()) {
				var rec map[string]any
				if err := json.Unmarshal([]byte(line), &rec); err != nil {
					t.Fatalf("invalid JSON %q: %v", line, err)
				}

				got = append(got, rec["level"].(string))
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("levels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogger_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		Make(&buf, WithPretty(false)).Info("built", slog.Int("results", 3))

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatal(err)
		}

		if rec["msg"] != "built" || rec["results"] != float64(3) {
			t.Errorf("record = %v", rec)
		}
	})

	t.Run("pretty json", func(t *testing.T) {
		var buf bytes.Buffer

		Make(&buf).With(slog.String("run", "a")).Info("built", slog.Int("results", 3))

		if !strings.Contains(buf.String(), "\n  \"results\": 3") {
			t.Errorf("output not indented: %s", buf.String())
		}

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatal(err)
		}

		if rec["run"] != "a" {
			t.Errorf("attribute from With missing: %v", rec)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		Make(&buf, WithFormat(FormatText), WithPretty(false)).Info("built", slog.Int("results", 3))

		if !strings.Contains(buf.String(), "msg=built results=3") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))
		logger = logger.With(slog.String("run", "a"))
		logger.Warn("stage done",
			slog.Group("stage", slog.String("name", "variants")),
			slog.String("text", "two words"),
			slog.Any("error", errors.New("boom")),
		)

		want := `WARN  stage done run=a stage.name=variants text="two words" error=boom` + "\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithFormat(FormatText), WithPretty(false)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("caller missing: %s", buf.String())
	}

	buf.Reset()
	Make(&buf, WithFormat(FormatText), WithPretty(false)).Info("here")

	if strings.Contains(buf.String(), "source=") {
		t.Errorf("caller reported when disabled: %s", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError || wrapped.Level() != LevelDebug {
		t.Fatalf("levels = %v, %v", base.Level(), wrapped.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Error("wrapped logger did not inherit output")
	}

	var zero Logger
	if got := zero.Wrap(WithLevel(LevelWarn)); got.Logger == nil || got.Level() != LevelWarn {
		t.Error("Wrap on zero Logger did not create a usable logger")
	}
}

func TestDefault_Config(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithPretty(false))

	Debug("one")
	With(slog.String("k", "v")).Info("two")
	TraceContext(t.Context(), "hidden")

	out := buf.String()
	if !strings.Contains(out, `"msg":"one"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("output = %s", out)
	}

	if strings.Contains(out, "hidden") {
		t.Error("trace record logged at debug level")
	}
}
