// Package config holds runtime configuration: defaults, CLI parsing, and
// validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// OutputMarker is appended to the run timestamp to name the output root.
const OutputMarker = "_converted"

// TimestampLayout formats the run start time for the output root name
// (YYYY_MM_DD_HH_MM_SS).
const TimestampLayout = "2006_01_02_15_04_05"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overridden by [Parse], and then passed (by pointer) to packages that
// need it. Parsing never starts a batch; main does that explicitly.
type Config struct {
	// Paths.
	InputDir   string
	OutputBase string // Parent of the timestamped output root. Default: ".".

	// External tools.
	SilkDecoder string        // Default: "./decoder".
	FFmpegPath  string        // Default: "ffmpeg" (PATH lookup).
	ToolTimeout time.Duration // Per invocation. Default: 2m.

	// AMR repair. Empty means the embedded "#!AMR\n" header.
	AMRHeaderPath string

	// Final output.
	OutputFormat string // Extension and ffmpeg muxer. Default: "mp3".
	AudioBitrate string // Default: "64k".

	// Fixed PCM contract of the SILK decoder (not user-configurable).
	PCMFormat     string // "s16le"
	PCMSampleRate int    // 24000 Hz
	PCMChannels   int    // 1

	// Behavior.
	Jobs      int // Concurrent files. Default: 1.
	DryRun    bool
	CheckOnly bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with every default applied. Used as the
// base before [Parse] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		OutputBase:    ".",
		SilkDecoder:   "./decoder",
		FFmpegPath:    "ffmpeg",
		ToolTimeout:   2 * time.Minute,
		OutputFormat:  "mp3",
		AudioBitrate:  "64k",
		PCMFormat:     "s16le",
		PCMSampleRate: 24000,
		PCMChannels:   1,
		Jobs:          1,
		ColorMode:     ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and numeric fields and canonicalizes the bitrate.
// When not in CheckOnly mode it also requires an input directory.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}
	if c.ToolTimeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.ToolTimeout)
	}

	format := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.OutputFormat), "."))
	if format == "" || strings.ContainsAny(format, `/\`) {
		return fmt.Errorf("invalid output format %q", c.OutputFormat)
	}
	switch format {
	case "wav", "pcm", "silk", "amr":
		// These collide with intermediate artifact names.
		return fmt.Errorf("output format %q is reserved for intermediate files", format)
	}
	c.OutputFormat = format

	normalizedBitrate, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalizedBitrate

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need exactly one input_dir")
	}
	if c.SilkDecoder == "" {
		return errors.New("silk decoder path must not be empty")
	}
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "64", "64k", "64K", "64kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 64k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}

// OutputInsideInput reports whether the resolved output path is inside (or
// equal to) the resolved input directory. Both arguments must be absolute,
// symlink-resolved paths. The pipeline excludes such an output root from
// discovery so it never converts its own output.
func OutputInsideInput(inputAbs, outputAbs string) bool {
	sep := string(filepath.Separator)
	return outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep)
}
