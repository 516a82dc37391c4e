// Package pipeline turns a validated pipeline configuration into an ordered
// list of processing steps and executes them against a per-run Record.
//
// Steps are small values implementing Step. Each reads the record's active
// file, produces a sibling output, and repoints the record. The Assembler
// decides which steps run for a media kind; the Runner loads configuration,
// resolves the publish date, and executes the plan sequentially, stopping at
// the first error.
package pipeline
