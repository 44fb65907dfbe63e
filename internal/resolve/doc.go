// Package resolve turns a name, a path or a compiled-artifact reference into
// the source path used as a cache key.
//
// Resolution is an ordered list of strategies evaluated until the first one
// reports a match:
//
//   - a path that already carries a source extension is returned unchanged;
//   - a compiled artifact (<dir>/.units/<base>.<tag>.lcu) maps back to <dir>/<base>;
//   - a dotted module identifier (pkg.mod) is handed to a Locator;
//   - anything else is returned unchanged.
//
// Resolution never fails; the worst case is the input itself.
package resolve
