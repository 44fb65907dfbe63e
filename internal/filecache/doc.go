// Package filecache stores the lines of source files keyed by canonical path.
//
// Entries are immutable snapshots of a file. Everything computed from an entry
// (highlighted variants, the content digest, the line/offset index) lives in a
// side table that is dropped whenever the entry is replaced or evicted, so
// derived data can never outlive the content it was computed from.
//
// A Cache is safe for concurrent use. One mutex guards entries, side table
// and scripts; a freshness check and the reload it triggers happen under it.
package filecache
