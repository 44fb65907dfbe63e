// Package remap holds the three indirection layers consulted before a file
// lookup: pattern rewrites of path text, alias substitution, and line-range
// remapping between two files.
//
// On every line query the layers apply in that order:
//
//	path := t.Rewrite(name)           // first matching pattern, applied once
//	path = t.Unalias(path)             // alias -> canonical, single hop
//	from, line, ok := t.Translate(path, line, fromMax)
//
// A line map is registered for the mapped ("to") file and points back to the
// file it was generated from. Anchor pairs are (From, To) line numbers kept
// sorted by From. Lines between anchors carry the offset of the nearest
// preceding anchor; lines before the first anchor map to themselves; lines
// past the last anchor extrapolate from it up to the end of the from-file.
//
// Registering a pair whose From already exists replaces the older pair, so the
// most recent registration wins. Overlapping or decreasing To ranges are
// accepted as given; lookups then fall back to a linear scan in From order.
package remap
