// Package preflight provides readiness checks for the filesystem paths
// sermonpipe writes to.
//
// The CLI "doctor" command runs RunAll alongside the tool checks in
// internal/deps so operators find a read-only output directory or a full
// disk before a long download starts.
package preflight
