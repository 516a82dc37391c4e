// Package main hosts the sermonpipe CLI entrypoint and command graph.
//
// The Cobra command tree loads settings, wires the fetchers, caches and
// ffmpeg tooling into a pipeline runner, and surfaces run, plan, cache,
// config and history operations. Keep this package thin: behaviour belongs
// in the internal packages and is only exposed here.
package main
