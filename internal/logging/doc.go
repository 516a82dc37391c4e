// Package logging builds the slog loggers used across sermonpipe.
//
// Two handlers are provided. The console handler writes one line per record
// and lifts the run ID, media kind and step label into a bracketed prefix so a
// run reads like a transcript. The JSON handler keeps every field and reports
// durations in milliseconds for log shippers.
package logging
