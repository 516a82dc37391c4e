// Package services defines shared utilities consumed by the pipeline steps and
// the fetch layer.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, step labels, and media kinds
//     for logging.
//   - Structured error markers plus the Wrap helper so every failure carries
//     the step that raised it and can be classified with errors.Is.
//
// Use these helpers when wiring new step logic so error reporting and log
// fields stay uniform across the pipeline.
package services
