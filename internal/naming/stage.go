package naming

import (
	"path/filepath"
	"strings"
)

// InputExt is the recognized extension of chat voice-message files.
const InputExt = ".aud"

// Stage identifies one artifact produced while converting a file.
type Stage int

const (
	StageAMR    Stage = iota // Repaired AMR container.
	StageSILK                // SILK stream with the vendor byte stripped.
	StagePCM                 // Raw s16le samples from the SILK decoder.
	StageWAV                 // Waveform intermediate.
	StageOutput              // Final output; extension chosen by the caller.
)

// Ext returns the fixed extension for intermediate stages. StageOutput has
// no fixed extension and returns "".
func (s Stage) Ext() string {
	switch s {
	case StageAMR:
		return ".amr"
	case StageSILK:
		return ".silk"
	case StagePCM:
		return ".pcm"
	case StageWAV:
		return ".wav"
	default:
		return ""
	}
}

// String returns the stage name used in logs and errors.
func (s Stage) String() string {
	switch s {
	case StageAMR:
		return "amr"
	case StageSILK:
		return "silk"
	case StagePCM:
		return "pcm"
	case StageWAV:
		return "wav"
	case StageOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Stem returns the basename of original with the recognized input
// extension removed. Other extensions are kept so "a.dat" and "a.aud" in
// the same directory never share a stem.
func Stem(original string) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	if strings.EqualFold(ext, InputExt) && len(base) > len(ext) {
		return base[:len(base)-len(ext)]
	}
	return base
}

// Derive maps (original name, stage) to the derived basename. outputFormat
// is the final extension without a dot and is only used for StageOutput.
//
//	Derive("msg.aud", StageWAV, "mp3")    -> "msg.wav"
//	Derive("msg.aud", StageOutput, "mp3") -> "msg.mp3"
//	Derive("msg.bin", StagePCM, "mp3")    -> "msg.bin.pcm"
func Derive(original string, stage Stage, outputFormat string) string {
	return derive(Stem(original), stage, outputFormat)
}

func derive(stem string, stage Stage, outputFormat string) string {
	if stage == StageOutput {
		return stem + "." + strings.TrimPrefix(outputFormat, ".")
	}
	return stem + stage.Ext()
}

// Paths holds the full paths of every artifact for one input file inside
// one output directory.
type Paths struct {
	AMR    string
	SILK   string
	PCM    string
	WAV    string
	Output string
}

// PathsFor returns the artifact paths for stem (already made unique by a
// [CollisionResolver]) inside dir. The stem is used as-is; it is never
// passed through [Stem] again.
func PathsFor(dir, stem, outputFormat string) Paths {
	join := func(s Stage) string {
		return filepath.Join(dir, derive(stem, s, outputFormat))
	}
	return Paths{
		AMR:    join(StageAMR),
		SILK:   join(StageSILK),
		PCM:    join(StagePCM),
		WAV:    join(StageWAV),
		Output: join(StageOutput),
	}
}

// Intermediates returns every intermediate path (not the final output).
func (p Paths) Intermediates() []string {
	return []string{p.AMR, p.SILK, p.PCM, p.WAV}
}
