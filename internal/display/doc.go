// Package display renders user-facing text that is not a log line: the
// startup banner, the styled --help output, the end-of-run summary box and
// human-readable sizes and durations.
package display
