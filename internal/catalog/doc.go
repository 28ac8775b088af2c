// Package catalog records scanned project files in SQLite.
//
// Each Record call stores one scan: the file's path, content digest and
// compression together with a summary row per sequence, the deduplicated media
// list, and any resolution warnings. Scans are immutable once written and are
// addressed by a random UUID. Writers serialize on an advisory file lock next
// to the database so concurrent CLI invocations do not interleave inserts.
//
// Schema changes bump schemaVersion in schema.go; existing databases with a
// different version are rejected with ErrSchemaMismatch and must be removed.
package catalog
