// Package convert implements the two repair/transcode pipelines.
//
//	AMR:  header ++ raw → .amr → ffmpeg → .wav → ffmpeg → output
//	SILK: raw[1:] → .silk → decoder → .pcm → ffmpeg (s16le 24 kHz) → .wav → ffmpeg → output
//
// Every intermediate is owned by the call that created it and removed
// before the call returns, on success and on failure. A failed call also
// removes any partial final output. Every external invocation's exit
// status is checked; failures are returned as [*StageError].
package convert
