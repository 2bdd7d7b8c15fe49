package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/phrasegen/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	logger.Info("build finished", slog.Int("results", 12))
	logger.Debug("not shown")

	// Output:
	// level=INFO msg="build finished" results=12
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
	).With(slog.String("run", "42"))

	logger.Warn("variant missing", slog.String("word", "hello"))

	// Output:
	// WARN  variant missing run=42 word=hello
}
