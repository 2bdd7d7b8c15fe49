// Package profile provides optional runtime profiling for phrasegen.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// [Stopper], so callers never need to check which build they run in.
//
// # Usage
//
//	p := profile.New(
//	    profile.WithMode("cpu"),
//	    profile.WithPath("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// Profile files are written to the output directory with names matching the
// mode (cpu.pprof, mem.pprof, and so on). Analyze them with
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// Tagged builds also import [net/http/pprof], which registers handlers
// under /debug/pprof/ on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
