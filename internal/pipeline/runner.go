package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/backmassage/audconvert/internal/config"
	"github.com/backmassage/audconvert/internal/convert"
	"github.com/backmassage/audconvert/internal/display"
	"github.com/backmassage/audconvert/internal/naming"
	"github.com/backmassage/audconvert/internal/sniff"
)

// Logger is the logging interface needed by the orchestrator.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// env holds the run's clock and report writer.
type env struct {
	now func() time.Time
	out io.Writer
}

// Run is the top-level batch entry point. It creates the output root,
// discovers files, converts each one on a bounded worker pool and returns
// aggregate stats. A non-nil error is always a fatal setup failure; per-file
// failures are only recorded in the stats.
func Run(ctx context.Context, cfg *config.Config, log Logger) (RunStats, error) {
	return run(ctx, cfg, log, env{now: time.Now, out: os.Stdout})
}

// CheckInputRoot returns an error wrapping ErrInputRoot unless dir is an
// existing directory.
func CheckInputRoot(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInputRoot, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInputRoot, dir)
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, log Logger, e env) (RunStats, error) {
	if err := CheckInputRoot(cfg.InputDir); err != nil {
		return RunStats{}, err
	}

	header, err := loadHeader(cfg)
	if err != nil {
		return RunStats{}, err
	}

	started := e.now()
	var outRoot string
	if cfg.DryRun {
		outRoot = filepath.Join(cfg.OutputBase, OutputRootName(started))
	} else {
		outRoot, err = CreateOutputRoot(cfg.OutputBase, started)
		if err != nil {
			return RunStats{}, err
		}
	}

	files, skipped, err := Discover(cfg.InputDir, outRoot)
	if err != nil {
		return RunStats{}, fmt.Errorf("%w: %w", ErrInputRoot, err)
	}

	rec := &statsRecorder{}
	rec.s.OutputRoot = outRoot
	rec.s.Total = len(files)
	for _, s := range skipped {
		log.Warn("Skip (unreadable): %s: %v", s.Path, s.Err)
	}
	rec.s.Skips = append(rec.s.Skips, skipped...)
	rec.s.Skipped = len(skipped)

	logBatchHeader(cfg, log, outRoot, len(files))

	if cfg.DryRun {
		planRun(cfg, log, e.out, files, outRoot, rec)
	} else {
		conv := convert.New(cfg, log, header)
		dispatch(ctx, cfg, log, conv, files, outRoot, rec)
	}

	stats := rec.snapshot()
	logSummary(cfg, log, e.out, &stats, e.now().Sub(started))
	return stats, nil
}

func loadHeader(cfg *config.Config) ([]byte, error) {
	if cfg.AMRHeaderPath == "" {
		return convert.DefaultAMRHeader(), nil
	}
	h, err := convert.LoadAMRHeader(cfg.AMRHeaderPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAMRHeader, err)
	}
	return h, nil
}

// dispatch runs files through conv with at most cfg.Jobs in flight. Output
// stems are resolved in discovery order so naming does not depend on
// scheduling. Once ctx is cancelled no further file is started.
func dispatch(
	ctx context.Context,
	cfg *config.Config,
	log Logger,
	conv *convert.Converter,
	files []string,
	outRoot string,
	rec *statsRecorder,
) {
	resolver := naming.NewCollisionResolver()
	sem := make(chan struct{}, cfg.Jobs)
	var wg sync.WaitGroup

	for i, path := range files {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}
		if ctx.Err() != nil {
			rec.update(func(s *RunStats) { s.NotStarted = len(files) - i })
			log.Warn("Interrupted: %d file(s) not started", len(files)-i)
			break
		}

		stem := resolver.Resolve(path, naming.Stem(path))
		paths := naming.PathsFor(outRoot, stem, cfg.OutputFormat)

		wg.Add(1)
		go func(n int, path string) {
			defer func() {
				<-sem
				wg.Done()
			}()
			processFile(ctx, cfg, log, conv, path, paths, n, len(files), rec)
		}(i+1, path)
	}
	wg.Wait()
}

// processFile classifies one input exactly once and converts it with the
// matching pipeline.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log Logger,
	conv *convert.Converter,
	path string,
	paths naming.Paths,
	n, total int,
	rec *statsRecorder,
) {
	family, err := sniff.Classify(path)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnreadable, err)
		log.Warn("[%d/%d] Skip (unreadable): %s: %v", n, total, path, err)
		rec.update(func(s *RunStats) {
			s.Skipped++
			s.Skips = append(s.Skips, FileFailure{Path: path, Err: err})
		})
		return
	}

	var inSize int64
	if fi, err := os.Stat(path); err == nil {
		inSize = fi.Size()
	}
	log.Info("[%d/%d] %s (%s, %s)", n, total, path, family, display.FormatBytes(inSize))
	log.Debug(cfg.Verbose, "  -> %s via %s", filepath.Base(paths.Output), family.Extension())
	rec.update(func(s *RunStats) {
		if family == sniff.FamilySILK {
			s.SILK++
		} else {
			s.AMR++
		}
	})

	res, err := conv.Convert(ctx, family, path, paths)
	if err != nil {
		log.Error("Failed: %v", err)
		rec.update(func(s *RunStats) {
			s.Failed++
			s.Failures = append(s.Failures, FileFailure{Path: path, Err: err})
		})
		return
	}

	var outSize int64
	if fi, err := os.Stat(res.Output); err == nil {
		outSize = fi.Size()
	}
	detail := ""
	if res.WAV != nil {
		detail = fmt.Sprintf(", %s %s %d Hz", display.FormatDuration(res.WAV.Duration), res.WAV.ChannelLabel(), res.WAV.SampleRate)
	}
	log.Success("Converted in %s -> %s (%s%s)",
		display.FormatDuration(res.Elapsed), filepath.Base(res.Output), display.FormatBytes(outSize), detail)

	rec.update(func(s *RunStats) {
		s.Converted++
		s.TotalInputBytes += inSize
		s.TotalOutputBytes += outSize
		if res.WAV != nil {
			s.AudioDuration += res.WAV.Duration
		}
	})
}

// planRun classifies every file and prints the planned outputs without
// writing anything.
func planRun(cfg *config.Config, log Logger, out io.Writer, files []string, outRoot string, rec *statsRecorder) {
	resolver := naming.NewCollisionResolver()
	var rows []planRow

	for _, path := range files {
		family, err := sniff.Classify(path)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrUnreadable, err)
			log.Warn("Skip (unreadable): %s: %v", path, err)
			rec.update(func(s *RunStats) {
				s.Skipped++
				s.Skips = append(s.Skips, FileFailure{Path: path, Err: err})
			})
			continue
		}
		var size int64
		if fi, err := os.Stat(path); err == nil {
			size = fi.Size()
		}

		stem := resolver.Resolve(path, naming.Stem(path))
		output := naming.PathsFor(outRoot, stem, cfg.OutputFormat).Output
		log.Debug(cfg.Verbose, "[DRY] %s (%s) -> %s", path, family, output)

		rows = append(rows, planRow{Name: path, Family: family, Size: size, Output: filepath.Base(output)})
		rec.update(func(s *RunStats) {
			s.Converted++
			s.TotalInputBytes += size
			if family == sniff.FamilySILK {
				s.SILK++
			} else {
				s.AMR++
			}
		})
	}

	if len(rows) == 0 {
		return
	}
	stats := sizeStats(rows)
	printPlanTable(out, rows, stats)
	logPlanSummary(log, rows, stats)
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log Logger, outRoot string, total int) {
	log.Info("Found %d files in %s", total, cfg.InputDir)
	if cfg.DryRun {
		log.Info("Output: %s (dry run, nothing is written)", outRoot)
	} else {
		log.Info("Output: %s", outRoot)
	}
	log.Info("Format: %s at %s", strings.ToUpper(cfg.OutputFormat), cfg.AudioBitrate)
	log.Info("SILK decoder: %s (PCM %s, %d Hz, %d ch)", cfg.SilkDecoder, cfg.PCMFormat, cfg.PCMSampleRate, cfg.PCMChannels)
	if cfg.AMRHeaderPath != "" {
		log.Info("AMR header: %s", cfg.AMRHeaderPath)
	}
	log.Debug(cfg.Verbose, "Workers: %d, tool timeout: %s", cfg.Jobs, cfg.ToolTimeout)
}

func logSummary(cfg *config.Config, log Logger, out io.Writer, stats *RunStats, elapsed time.Duration) {
	log.Info("==============================")
	if cfg.DryRun {
		log.Info("Done (dry run): %d planned, %d skipped", stats.Converted, stats.Skipped)
	} else {
		log.Info("Done: %d converted, %d failed, %d skipped", stats.Converted, stats.Failed, stats.Skipped)
	}
	log.Info("  Total files processed: %d", stats.Processed())
	for _, f := range stats.Failures {
		log.Error("  Failed: %s: %v", f.Path, f.Err)
	}
	for _, f := range stats.Skips {
		log.Warn("  Skipped: %s: %v", f.Path, f.Err)
	}
	if stats.NotStarted > 0 {
		log.Warn("  Not started: %d (interrupted)", stats.NotStarted)
	}

	fields := []display.Field{
		{Key: "Files", Value: fmt.Sprintf("%d (%d AMR, %d SILK)", stats.Total, stats.AMR, stats.SILK)},
		{Key: "Converted", Value: fmt.Sprint(stats.Converted)},
		{Key: "Failed", Value: fmt.Sprint(stats.Failed)},
		{Key: "Skipped", Value: fmt.Sprint(stats.Skipped)},
		{Key: "Input", Value: display.FormatBytes(stats.TotalInputBytes)},
	}
	if !cfg.DryRun {
		fields = append(fields,
			display.Field{Key: "Output", Value: display.FormatBytes(stats.TotalOutputBytes)},
			display.Field{Key: "Audio", Value: display.FormatDuration(stats.AudioDuration)},
		)
	}
	fields = append(fields,
		display.Field{Key: "Elapsed", Value: display.FormatDuration(elapsed)},
		display.Field{Key: "Folder", Value: stats.OutputRoot},
	)
	fmt.Fprintln(out, display.SummaryBox("Summary", fields))
}
