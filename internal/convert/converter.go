package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/audconvert/internal/config"
	"github.com/backmassage/audconvert/internal/ffmpeg"
	"github.com/backmassage/audconvert/internal/naming"
	"github.com/backmassage/audconvert/internal/probe"
	"github.com/backmassage/audconvert/internal/silk"
	"github.com/backmassage/audconvert/internal/sniff"
	"github.com/backmassage/audconvert/internal/tool"
)

// Logger is the minimal logging interface needed by the pipelines.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Converter runs the AMR and SILK pipelines. It is safe for concurrent use
// as long as each call gets its own [naming.Paths].
type Converter struct {
	cfg    *config.Config
	log    Logger
	header []byte
}

// New returns a Converter using header as the AMR container header.
func New(cfg *config.Config, log Logger, header []byte) *Converter {
	return &Converter{cfg: cfg, log: log, header: header}
}

// Result describes a successful conversion.
type Result struct {
	Output  string
	WAV     *probe.WAVInfo // nil when the intermediate could not be probed
	Elapsed time.Duration
}

// Convert dispatches input to the pipeline for family. The family is the
// one assigned by the caller's single classification; it is never
// re-derived here.
func (c *Converter) Convert(ctx context.Context, family sniff.Family, input string, p naming.Paths) (Result, error) {
	switch family {
	case sniff.FamilySILK:
		return c.SILK(ctx, input, p)
	case sniff.FamilyAMR:
		return c.AMR(ctx, input, p)
	default:
		return Result{}, fmt.Errorf("%s: unsupported family %s", filepath.Base(input), family)
	}
}

// AMR repairs a headerless AMR payload and transcodes it to p.Output.
func (c *Converter) AMR(ctx context.Context, input string, p naming.Paths) (res Result, err error) {
	start := time.Now()
	defer c.release(p.Intermediates()...)
	defer c.dropOutputOnError(p.Output, &err)

	if err = writeRepaired(input, p.AMR, c.header); err != nil {
		return res, stageErr(naming.StageAMR, input, err)
	}
	if err = c.transcode(ctx, ffmpeg.ContainerToWAV(p.AMR, p.WAV), "amr"); err != nil {
		return res, stageErr(naming.StageWAV, input, err)
	}
	res.WAV = c.probeWAV(p.WAV)
	if err = c.transcode(ctx, ffmpeg.WAVToOutput(c.cfg, p.WAV, p.Output), ""); err != nil {
		return res, stageErr(naming.StageOutput, input, err)
	}

	res.Output = p.Output
	res.Elapsed = time.Since(start)
	return res, nil
}

// SILK strips the vendor byte, decodes the SILK stream to PCM, wraps it
// into a waveform file and transcodes that to p.Output.
func (c *Converter) SILK(ctx context.Context, input string, p naming.Paths) (res Result, err error) {
	start := time.Now()
	defer c.release(p.Intermediates()...)
	defer c.dropOutputOnError(p.Output, &err)

	if _, err = silk.StripPrefix(input, p.SILK); err != nil {
		return res, stageErr(naming.StageSILK, input, err)
	}
	if _, err = silk.Decode(ctx, c.cfg, p.SILK, p.PCM); err != nil {
		c.logToolOutput(err)
		return res, stageErr(naming.StagePCM, input, err)
	}
	if err = c.transcode(ctx, ffmpeg.PCMToWAV(c.cfg, p.PCM, p.WAV), ""); err != nil {
		return res, stageErr(naming.StageWAV, input, err)
	}
	res.WAV = c.probeWAV(p.WAV)
	if err = c.transcode(ctx, ffmpeg.WAVToOutput(c.cfg, p.WAV, p.Output), ""); err != nil {
		return res, stageErr(naming.StageOutput, input, err)
	}

	res.Output = p.Output
	res.Elapsed = time.Since(start)
	return res, nil
}

// transcode runs one ffmpeg job, retrying once with fallback forced as the
// input format when ffmpeg cannot detect the input.
func (c *Converter) transcode(ctx context.Context, job ffmpeg.Job, fallback string) error {
	rs := ffmpeg.NewRetryState(fallback)
	for {
		_, err := ffmpeg.Execute(ctx, c.cfg, job)
		if err == nil {
			return nil
		}

		var te *tool.Error
		if ctx.Err() != nil || !errors.As(err, &te) || !errors.Is(err, tool.ErrExitStatus) {
			c.logToolOutput(err)
			return err
		}

		if rs.Advance(&job, te.Output) == ffmpeg.RetryNone {
			c.logToolOutput(err)
			return err
		}
		c.log.Warn("  Retry %d: forcing input format %s for %s", rs.Attempt, job.InputFormat, filepath.Base(job.InputPath))
		removeIfExists(job.OutputPath)
	}
}

func (c *Converter) probeWAV(path string) *probe.WAVInfo {
	info, err := probe.WAV(path)
	if err != nil {
		c.log.Debug(c.cfg.Verbose, "  Cannot probe %s: %v", filepath.Base(path), err)
		return nil
	}
	return info
}

// logToolOutput logs the tail of a failed tool's output and a hint.
func (c *Converter) logToolOutput(err error) {
	var te *tool.Error
	if !errors.As(err, &te) {
		return
	}
	c.log.Debug(c.cfg.Verbose, "  Command: %s", te.CommandLine())
	for _, l := range tool.Tail(te.Output, 10) {
		c.log.Error("  %s", l)
	}
	if te.Name == "ffmpeg" {
		if hint := ffmpeg.Hint(te.Output); hint != "" {
			c.log.Warn("  Hint: %s", hint)
		}
	}
}

// release removes intermediates that exist. Failures are logged, never
// returned.
func (c *Converter) release(paths ...string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("  Cannot remove intermediate %s: %v", p, err)
		}
	}
}

// dropOutputOnError removes a partial final output when *errp is set.
func (c *Converter) dropOutputOnError(output string, errp *error) {
	if *errp == nil {
		return
	}
	if err := os.Remove(output); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.log.Warn("  Cannot remove partial output %s: %v", output, err)
	}
}

func removeIfExists(path string) {
	_ = os.Remove(path)
}
