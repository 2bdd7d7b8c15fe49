// Package log provides a small structured logging interface based on
// [log/slog].
//
// A [Logger] is an immutable value. Its output, level, format, time layout,
// and caller reporting are fixed when it is created with [Make] and can be
// changed only by deriving a new logger with [Logger.Wrap]. The zero Logger
// discards everything, so types may embed one without initializing it.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("build finished", slog.Int("results", 12))
//
// # Levels
//
// In addition to the four [slog] levels, the package defines [LevelTrace]
// below [LevelDebug] for per-stage diagnostics of template builds.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are supported. With [WithPretty],
// JSON records are indented and text records are rendered for a terminal,
// coloured when the output supports it.
//
// # Default Logger
//
// The package-level functions ([Info], [ErrorContext], ...) write through a
// process-wide default logger reconfigured with [Config].
package log
