// Package naming derives every on-disk name used by a conversion from the
// original input filename, and resolves output collisions within a run.
//
// All stage names come from [Derive]; no other package builds names by
// string substitution. The recognized input extension (".aud", matched
// case-insensitively) is replaced by the stage extension; any other name
// keeps its full basename and gains the stage extension.
package naming
