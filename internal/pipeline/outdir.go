package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/audconvert/internal/config"
)

// OutputRootName returns the output root name for a run started at t,
// e.g. "2024_05_01_13_45_09_converted".
func OutputRootName(t time.Time) string {
	return t.Format(config.TimestampLayout) + config.OutputMarker
}

// CreateOutputRoot creates the output root for a run started at now inside
// base. base is created if missing; the root itself must not exist yet, so
// two runs never share an output directory.
func CreateOutputRoot(base string, now time.Time) (string, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutputRoot, err)
	}
	dir := filepath.Join(base, OutputRootName(now))
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutputRoot, err)
	}
	return dir, nil
}
