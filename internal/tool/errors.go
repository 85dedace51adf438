package tool

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes carried by [*Error]. Test with errors.Is.
var (
	ErrNotFound   = errors.New("executable not found")
	ErrTimeout    = errors.New("timed out")
	ErrExitStatus = errors.New("exited with non-zero status")
)

// Error describes a failed external invocation.
type Error struct {
	Name     string   // Label used in logs, e.g. "ffmpeg".
	Path     string   // Executable that was run.
	Args     []string // Arguments (without the executable).
	ExitCode int      // -1 when the process did not exit normally.
	Output   string   // Captured stdout+stderr tail.
	Err      error    // Wraps one of the sentinels, or a context error.
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrExitStatus):
		return fmt.Sprintf("%s exited with status %d", e.Name, e.ExitCode)
	default:
		return fmt.Sprintf("%s: %v", e.Name, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// CommandLine returns the invocation as a single shell-like string for logs.
func (e *Error) CommandLine() string {
	return strings.Join(append([]string{e.Path}, e.Args...), " ")
}

// Tail returns at most n trailing non-empty lines of captured output.
func Tail(output string, n int) []string {
	output = strings.TrimSpace(output)
	if output == "" || n <= 0 {
		return nil
	}
	lines := strings.Split(output, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimRight(l, "\r"); strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
