// Command audconvert is the CLI entrypoint for the voice-message converter.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the batch conversion pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/backmassage/audconvert/internal/check"
	"github.com/backmassage/audconvert/internal/config"
	"github.com/backmassage/audconvert/internal/display"
	"github.com/backmassage/audconvert/internal/logging"
	"github.com/backmassage/audconvert/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitFatal   = 1
	exitBadArgs = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.Parse(&cfg, args, version, kongHelp()); err != nil {
		fmt.Fprintf(os.Stderr, "audconvert: %v\n", err)
		return exitBadArgs
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "audconvert: %v\n", err)
		return exitBadArgs
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audconvert: %v\n", err)
		return exitFatal
	}
	defer log.Close()

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner(os.Stdout, version)

	// SIGINT/SIGTERM cancel ctx: no new files are started and running
	// tools are killed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go watchInterrupt(ctx, sigCh, cancel, log)

	if cfg.CheckOnly {
		check.RunCheck(ctx, &cfg, log)
		return exitOK
	}

	log.Info("=== audconvert v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputBase)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	if inputAbs, err := absPath(cfg.InputDir); err == nil {
		if outputAbs, err := absPath(cfg.OutputBase); err == nil && config.OutputInsideInput(inputAbs, outputAbs) {
			log.Debug(cfg.Verbose, "Output folder is inside the input tree; it is excluded from discovery")
		}
	}

	if err := preflight(&cfg, log); err != nil {
		log.Error("%v", err)
		return exitFatal
	}

	// Phase 3: Run the batch.
	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return exitFatal
	}
	log.Debug(cfg.Verbose, "Output folder: %s", stats.OutputRoot)
	return exitOK
}

// warner is the logging needed before the batch starts.
type warner interface {
	Warn(string, ...interface{})
}

// preflight validates fatal preconditions in the order a user fixes them:
// the input root first, then ffmpeg. A missing decoder only affects SILK
// files, which then fail individually, so it is logged and not returned.
func preflight(cfg *config.Config, log warner) error {
	if err := pipeline.CheckInputRoot(cfg.InputDir); err != nil {
		return err
	}
	if err := check.CheckDeps(cfg); err != nil {
		if !errors.Is(err, check.ErrSilkDecoderNotFound) {
			return err
		}
		log.Warn("%v; SILK voice messages will fail", err)
	}
	return nil
}

// watchInterrupt cancels the run on the first signal and then restores
// default signal handling, so a second Ctrl-C terminates the process.
func watchInterrupt(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc, log warner) {
	select {
	case <-sigCh:
		signal.Stop(sigCh)
		log.Warn("Received interrupt, stopping… (press Ctrl-C again to force quit)")
		cancel()
	case <-ctx.Done():
	}
}

func kongHelp() kong.Option {
	return kong.Help(display.StyledHelpPrinter())
}

// absPath returns the absolute, symlink-resolved path for comparing input
// and output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
