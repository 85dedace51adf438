package config

// This file implements CLI parsing with kong. The kong model is private;
// callers only ever see the resulting Config value.

import (
	"strconv"
	"time"

	"github.com/alecthomas/kong"
)

// cli is the kong command model. Defaults are interpolated from
// DefaultConfig so the help text and Config never disagree.
type cli struct {
	InputDir string `arg:"" name:"input_dir" optional:"" help:"Root folder of .aud voice messages (searched recursively)."`

	SilkDecoder string        `short:"s" name:"silk-decoder" default:"${silk_decoder}" help:"Path to the SILK codec decoder program."`
	FFmpeg      string        `name:"ffmpeg" default:"${ffmpeg}" help:"ffmpeg executable (looked up on PATH)."`
	Timeout     time.Duration `name:"timeout" default:"${timeout}" help:"Timeout for each decoder/ffmpeg invocation."`
	AMRHeader   string        `name:"amr-header" placeholder:"PATH" help:"AMR header template file (default: built-in #!AMR header)."`

	OutputBase string `short:"o" name:"output-base" default:"${output_base}" help:"Directory in which the timestamped output folder is created."`
	Format     string `name:"format" default:"${format}" help:"Final output format and extension."`
	Bitrate    string `name:"bitrate" default:"${bitrate}" help:"Final output audio bitrate."`

	Jobs   int  `short:"j" name:"jobs" default:"${jobs}" help:"Number of files converted concurrently."`
	DryRun bool `short:"d" name:"dry-run" help:"Classify files and show planned outputs; write nothing."`
	Check  bool `short:"c" name:"check" help:"Run system diagnostics (ffmpeg, SILK decoder) and exit."`

	Verbose bool   `short:"v" name:"verbose" help:"Verbose output, including tool output."`
	Color   string `name:"color" enum:"auto,always,never" default:"${color}" help:"Colored logs: auto, always or never."`
	Log     string `short:"l" name:"log" placeholder:"PATH" help:"Append logs to file (rotated)."`

	Version kong.VersionFlag `short:"V" name:"version" help:"Print version and exit."`
}

// Parse parses args (without the program name) into cfg. Extra kong
// options (help printer, exit hook, writers) are appended after the
// defaults. --help and --version print and exit through kong.
func Parse(cfg *Config, args []string, version string, options ...kong.Option) error {
	var c cli
	opts := []kong.Option{
		kong.Name("audconvert"),
		kong.Description("Convert chat voice messages (.aud: headerless AMR or prefixed SILK) into playable audio."),
		kong.Vars{
			"version":      "audconvert v" + version,
			"silk_decoder": cfg.SilkDecoder,
			"ffmpeg":       cfg.FFmpegPath,
			"timeout":      cfg.ToolTimeout.String(),
			"output_base":  cfg.OutputBase,
			"format":       cfg.OutputFormat,
			"bitrate":      cfg.AudioBitrate,
			"jobs":         strconv.Itoa(cfg.Jobs),
			"color":        string(cfg.ColorMode),
		},
		kong.UsageOnError(),
	}
	opts = append(opts, options...)

	parser, err := kong.New(&c, opts...)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	c.apply(cfg)
	return nil
}

// apply copies parsed values into cfg.
func (c *cli) apply(cfg *Config) {
	if c.InputDir != "" {
		cfg.InputDir = NormalizeDirArg(c.InputDir)
	}
	cfg.SilkDecoder = c.SilkDecoder
	cfg.FFmpegPath = c.FFmpeg
	cfg.ToolTimeout = c.Timeout
	cfg.AMRHeaderPath = c.AMRHeader
	cfg.OutputBase = NormalizeDirArg(c.OutputBase)
	cfg.OutputFormat = c.Format
	cfg.AudioBitrate = c.Bitrate
	cfg.Jobs = c.Jobs
	cfg.DryRun = c.DryRun
	cfg.CheckOnly = c.Check
	cfg.Verbose = c.Verbose
	cfg.ColorMode = ColorMode(c.Color)
	cfg.LogFile = c.Log
}
