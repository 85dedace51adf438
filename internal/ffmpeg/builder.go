package ffmpeg

import (
	"strconv"

	"github.com/backmassage/audconvert/internal/config"
)

// Job describes one ffmpeg conversion between two files on disk.
type Job struct {
	InputPath  string
	OutputPath string

	// Forced input format. Empty means "infer from the input".
	InputFormat   string
	InputRate     int // -ar before -i; 0 omits it.
	InputChannels int // -ac before -i; 0 omits it.

	// Output audio bitrate (-b:a). Empty leaves the encoder default.
	Bitrate string
}

// Build constructs the complete ffmpeg argument slice (without the
// executable) for a job.
func Build(cfg *config.Config, j Job) []string {
	args := make([]string, 0, 16)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y")
	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Forced input format ---
	if j.InputFormat != "" {
		args = append(args, "-f", j.InputFormat)
	}
	if j.InputRate > 0 {
		args = append(args, "-ar", strconv.Itoa(j.InputRate))
	}
	if j.InputChannels > 0 {
		args = append(args, "-ac", strconv.Itoa(j.InputChannels))
	}

	// --- Input ---
	args = append(args, "-i", j.InputPath)

	// --- Output ---
	if j.Bitrate != "" {
		args = append(args, "-b:a", j.Bitrate)
	}
	args = append(args, j.OutputPath)

	return args
}

// ContainerToWAV converts a file whose format ffmpeg can detect (the
// repaired AMR container) into a waveform file.
func ContainerToWAV(in, out string) Job {
	return Job{InputPath: in, OutputPath: out}
}

// PCMToWAV wraps the SILK decoder's raw samples into a waveform file using
// the fixed PCM contract from cfg.
func PCMToWAV(cfg *config.Config, in, out string) Job {
	return Job{
		InputPath:     in,
		OutputPath:    out,
		InputFormat:   cfg.PCMFormat,
		InputRate:     cfg.PCMSampleRate,
		InputChannels: cfg.PCMChannels,
	}
}

// WAVToOutput encodes the waveform file into the final output. The output
// format is inferred from the output extension.
func WAVToOutput(cfg *config.Config, in, out string) Job {
	return Job{InputPath: in, OutputPath: out, Bitrate: cfg.AudioBitrate}
}
