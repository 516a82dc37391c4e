// Package ffmpeg builds and executes the ffmpeg invocations used by the
// pipeline: stream-copy trims, fade filters, loudness and resolution
// normalization, and concat-demuxer joins.
//
// Commands run through an injectable CommandRunner so tests can assert the
// exact argument lists without an ffmpeg binary.
package ffmpeg
