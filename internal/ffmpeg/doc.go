// Package ffmpeg builds and runs the transcoder invocations used by the
// conversion pipelines.
//
// Two invocation shapes are used: "-i <in> <out>" with formats inferred
// from the extensions, and "-f <fmt> [-ar <rate> -ac <ch>] -i <in> <out>"
// with the input format forced (raw PCM, or an AMR container ffmpeg failed
// to detect). Failures are classified from stderr so the caller can retry
// once with a forced input format or print a useful hint.
package ffmpeg
