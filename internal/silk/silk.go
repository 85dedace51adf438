// Package silk runs the external SILK v3 decoder and prepares its input.
//
// The decoder is invoked as "<decoder> <input.silk> <output.pcm>" and
// writes raw signed 16-bit little-endian mono samples at 24 kHz.
package silk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/backmassage/audconvert/internal/config"
	"github.com/backmassage/audconvert/internal/tool"
)

// ErrEmptyInput is returned when there is no byte to strip.
var ErrEmptyInput = errors.New("empty input: no vendor prefix byte to strip")

// StripPrefix copies src to dst without its first byte, the prefix the chat
// application adds before the "#!SILK_V3" marker. It returns the number of
// bytes written.
func StripPrefix(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	var prefix [1]byte
	if _, err := io.ReadFull(in, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrEmptyInput
		}
		return 0, fmt.Errorf("read %s: %w", src, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("write %s: %w", dst, err)
	}
	return n, nil
}

// Decode runs the configured decoder on in, writing PCM samples to out.
func Decode(ctx context.Context, cfg *config.Config, in, out string) (tool.Result, error) {
	var tee io.Writer
	if cfg.Verbose {
		tee = os.Stderr
	}
	return tool.Run(ctx, tool.Invocation{
		Name:    "silk-decoder",
		Path:    cfg.SilkDecoder,
		Args:    []string{in, out},
		Timeout: cfg.ToolTimeout,
		Tee:     tee,
	})
}
