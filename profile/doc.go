// Package profile provides optional runtime profiling for the CLI.
//
// It wraps [github.com/pkg/profile] behind the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Config.Start] returns a no-op
// stopper, so callers never need build tags of their own.
//
// Supported modes with the tag: allocs, block, clock, cpu, goroutine, heap,
// mem, mutex, thread, trace.
//
//	stop := profile.Config{Mode: "cpu", Path: dir, Quiet: true}.Start()
//	defer stop.Stop()
package profile
