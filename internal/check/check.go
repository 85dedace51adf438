// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg and the SILK decoder.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/audconvert/internal/config"
	"github.com/backmassage/audconvert/internal/convert"
	"github.com/backmassage/audconvert/internal/tool"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound      = errors.New("ffmpeg not found")
	ErrSilkDecoderNotFound = errors.New("SILK decoder not found or not executable")
)

// probeTimeout bounds each diagnostic ffmpeg call.
const probeTimeout = 15 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: it reports the ffmpeg
// version, AMR demuxer support, a test encode to the configured output
// format, the SILK decoder and the AMR header. It is informational only
// and does not stop on failure.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	if checkFfmpeg(ctx, cfg, log) {
		checkAMRDemuxer(ctx, cfg, log)
		checkOutputEncode(ctx, cfg, log)
	}
	checkDecoder(cfg, log)
	checkHeader(cfg, log)
}

// checkFfmpeg verifies ffmpeg is runnable and logs its version string.
func checkFfmpeg(ctx context.Context, cfg *config.Config, log Logger) bool {
	path, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		log.Error("ffmpeg not found: %s", cfg.FFmpegPath)
		return false
	}
	res, err := runFfmpeg(ctx, cfg, "-version")
	if err != nil {
		log.Warn("ffmpeg found at %s but -version failed: %v", path, err)
		return false
	}
	firstLine := strings.TrimSpace(res.Output)
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
	log.Debug(cfg.Verbose, "  path: %s", path)
	return true
}

// checkAMRDemuxer verifies ffmpeg can read repaired AMR containers.
func checkAMRDemuxer(ctx context.Context, cfg *config.Config, log Logger) {
	res, err := runFfmpeg(ctx, cfg, "-hide_banner", "-demuxers")
	if err != nil {
		log.Warn("Could not list demuxers: %v", err)
		return
	}
	for _, line := range strings.Split(res.Output, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.Contains(fields[0], "D") && fields[1] == "amr" {
			log.Success("AMR demuxer available")
			return
		}
	}
	log.Error("ffmpeg has no AMR demuxer; AMR voice messages will fail")
}

// checkOutputEncode runs a minimal encode to the configured output format.
func checkOutputEncode(ctx context.Context, cfg *config.Config, log Logger) {
	log.Info("Testing %s encode at %s...", strings.ToUpper(cfg.OutputFormat), cfg.AudioBitrate)
	dir, err := os.MkdirTemp("", "audconvert-check-")
	if err != nil {
		log.Warn("Cannot create temp dir: %v", err)
		return
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "check."+cfg.OutputFormat)
	_, err = runFfmpeg(ctx, cfg,
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-b:a", cfg.AudioBitrate, "-y", out,
	)
	if err != nil {
		log.Error("%s encode test failed: %v", strings.ToUpper(cfg.OutputFormat), err)
		var te *tool.Error
		if errors.As(err, &te) {
			for _, l := range tool.Tail(te.Output, 5) {
				log.Error("  %s", l)
			}
		}
		return
	}
	log.Success("%s encoder works", strings.ToUpper(cfg.OutputFormat))
}

// checkDecoder reports whether the SILK decoder is present and executable.
func checkDecoder(cfg *config.Config, log Logger) {
	path, err := lookDecoder(cfg)
	if err != nil {
		log.Error("SILK decoder: %v", err)
		return
	}
	log.Success("SILK decoder: %s", path)
}

// checkHeader reports the AMR header in use.
func checkHeader(cfg *config.Config, log Logger) {
	if cfg.AMRHeaderPath == "" {
		log.Info("AMR header: built-in (%d bytes)", len(convert.DefaultAMRHeader()))
		return
	}
	h, err := convert.LoadAMRHeader(cfg.AMRHeaderPath)
	if err != nil {
		log.Error("AMR header: %v", err)
		return
	}
	log.Success("AMR header: %s (%d bytes)", cfg.AMRHeaderPath, len(h))
}

// CheckDeps is the pre-pipeline validation. A missing ffmpeg is returned
// first, wrapping ErrFfmpegNotFound; otherwise a missing or non-executable
// decoder wraps ErrSilkDecoderNotFound. Callers treat only the former as
// fatal: without a decoder AMR files still convert.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return fmt.Errorf("%w: %w", ErrFfmpegNotFound, err)
	}
	if _, err := lookDecoder(cfg); err != nil {
		return err
	}
	return nil
}

// --- internal helpers ---

func lookDecoder(cfg *config.Config) (string, error) {
	path, err := exec.LookPath(cfg.SilkDecoder)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSilkDecoderNotFound, err)
	}
	return path, nil
}

func runFfmpeg(ctx context.Context, cfg *config.Config, args ...string) (tool.Result, error) {
	return tool.Run(ctx, tool.Invocation{
		Name:    "ffmpeg",
		Path:    cfg.FFmpegPath,
		Args:    args,
		Timeout: probeTimeout,
	})
}
