package tool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"time"
)

// maxOutput caps the captured output kept per invocation.
const maxOutput = 64 << 10

// waitDelay bounds how long Wait blocks on the output pipes after the
// child has been killed (grandchildren may hold them open).
const waitDelay = 2 * time.Second

// Invocation describes one external process call.
type Invocation struct {
	Name    string // Label for logs and errors.
	Path    string // Executable; bare names are looked up on PATH.
	Args    []string
	Timeout time.Duration // Zero means no timeout.
	Tee     io.Writer     // Optional live copy of the output (verbose mode).
}

// Result holds the outcome of a successful invocation.
type Result struct {
	Output  string
	Elapsed time.Duration
}

// Run executes inv and blocks until it exits, the timeout expires, or ctx
// is cancelled. On expiry or cancellation the child is killed. Any failure,
// including a non-zero exit status, is returned as an [*Error].
func Run(ctx context.Context, inv Invocation) (Result, error) {
	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	sink := &tailBuffer{limit: maxOutput}
	var w io.Writer = sink
	if inv.Tee != nil {
		w = io.MultiWriter(sink, inv.Tee)
	}

	cmd := exec.CommandContext(runCtx, inv.Path, inv.Args...)
	cmd.Stdout = w
	cmd.Stderr = w
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	res := Result{Output: sink.String(), Elapsed: time.Since(start)}
	if err == nil {
		return res, nil
	}

	te := &Error{
		Name:     inv.Name,
		Path:     inv.Path,
		Args:     inv.Args,
		ExitCode: -1,
		Output:   res.Output,
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		te.Err = ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		te.Err = fmt.Errorf("%w after %s", ErrTimeout, inv.Timeout)
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		te.Err = fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.As(err, &exitErr):
		te.ExitCode = exitErr.ExitCode()
		te.Err = ErrExitStatus
	default:
		te.Err = err
	}
	return res, te
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	buf   []byte
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return n, nil
}

func (t *tailBuffer) String() string { return string(t.buf) }
