// Package history records finished pipeline runs in SQLite.
//
// Each run row captures the kind, stream, date, published output, outcome and
// duration so operators can review what the CLI produced without digging
// through logs. The database is append-only from the CLI's perspective.
// The schema version is kept in PRAGMA user_version. A database written by
// another version is rejected and has to be removed by hand.
package history
