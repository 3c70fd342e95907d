// Package profile wraps [github.com/pkg/profile] for the rdmx command.
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
//
// # Usage
//
//	p := profile.New(
//	    profile.WithMode("cpu"),
//	    profile.WithPath("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// The command line exposes the same settings as --pprof-mode and
// --pprof-dir; the default directory is the pprof subdirectory of the user
// cache directory (for example $XDG_CACHE_HOME/rdmx/pprof).
//
// Profiles are written as <mode>.pprof and analyzed with
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The tagged build also registers the net/http/pprof handlers, which are
// served only if the program starts an HTTP server.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
