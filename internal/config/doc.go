// Package config loads, normalizes, and validates sermonpipe application
// settings.
//
// It defines the typed TOML schema, supplies sensible defaults, expands user
// paths, and applies environment overrides. Settings cover where cached and
// published media live, which external tools to invoke, and the encoding
// profiles the pipeline steps use. Pipeline run configuration (the weekly JSON
// document) lives in the pipelineconfig package instead.
package config
