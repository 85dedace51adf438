// Package probe inspects the waveform intermediate produced during a
// conversion so per-file stats (duration, sample rate, channels) can be
// logged before the intermediate is deleted.
//
// Probing is informational: callers log a failed probe at debug level and
// carry on, since decoder correctness is not validated.
package probe
