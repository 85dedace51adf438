// Package tool runs external executables (ffmpeg, the SILK decoder) as
// blocking child processes with a per-invocation timeout.
//
// Each invocation captures the child's stdout and stderr into its own
// in-memory sink; nothing is written to disk and nothing is shared between
// invocations, so concurrent conversions cannot interfere. A non-zero exit
// status, a missing executable, or an expired timeout is always returned as
// an [*Error]; there is no silent success.
package tool
