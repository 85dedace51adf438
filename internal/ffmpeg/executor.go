package ffmpeg

import (
	"context"
	"io"
	"os"

	"github.com/backmassage/audconvert/internal/config"
	"github.com/backmassage/audconvert/internal/tool"
)

// Execute builds and runs the ffmpeg command for a job. In verbose mode the
// output is tee'd to os.Stderr in real time; otherwise it is only captured
// for error classification.
func Execute(ctx context.Context, cfg *config.Config, j Job) (tool.Result, error) {
	var tee io.Writer
	if cfg.Verbose {
		tee = os.Stderr
	}
	return tool.Run(ctx, tool.Invocation{
		Name:    "ffmpeg",
		Path:    cfg.FFmpegPath,
		Args:    Build(cfg, j),
		Timeout: cfg.ToolTimeout,
		Tee:     tee,
	})
}
