// Package cli contains the command line interface for phrasegen.
//
// # Commands
//
//	phrasegen [build] [flags] [template ...]
//	phrasegen modifiers
//	phrasegen variants [-V FILE ...]
//	phrasegen repl [-b FILE] [-V FILE ...]
//
// build is the default command. Each template argument and each file given
// with -f is a phrase group; groups are combined in order, files first.
//
//	phrasegen -b vars.yaml '[Hello|Hi] {$name}' '^Goodbye {$name}C'
//	phrasegen -f openers.txt -V variants.yaml -o json
//	phrasegen -w -f openers.txt -b vars.yaml
//
// # Input Files
//
// Relative file names are resolved against the working directory, then each
// directory given with --path, then each entry of $PHRASEGEN_PATH, then the
// configuration directory. A file name of "-" reads the standard input.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the
// configuration directory. Keys name flags; a key may be qualified by the
// command it applies to:
//
//	log:
//	  level: info
//	build:
//	  output: json
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o phrasegen .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
