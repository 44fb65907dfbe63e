// Package linecache answers "line N of file F" for debuggers and profilers.
//
// A Cache composes the remap tables, the path resolver, the file cache and
// the line/offset correlator. A query name goes through pattern rewrite,
// alias substitution and path resolution to become a canonical key; line
// numbers go through the line map registered for that key, if any.
//
// Every query reports failure as ok == false; nothing panics or returns an
// error for a missing file, alias, script or compiled unit.
package linecache
