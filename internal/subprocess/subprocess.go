package subprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a run when the caller's context has no deadline.
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when a process outlives its deadline.
var ErrTimeout = errors.New("subprocess timed out")

// ExitError describes a process that ran but exited unsuccessfully.
type ExitError struct {
	Name   string
	Err    error
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Name, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Name, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Runner executes commands with their stdin configured before start, so the
// child never races the parent for its input.
type Runner struct {
	timeout time.Duration
	env     []string
}

// NewRunner creates a runner. A non-positive timeout selects DefaultTimeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout}
}

// WithEnv returns a copy of r that appends env to the inherited environment.
func (r *Runner) WithEnv(env ...string) *Runner {
	c := *r
	c.env = append(append([]string(nil), r.env...), env...)
	return &c
}

// Timeout reports the deadline applied to runs without one.
func (r *Runner) Timeout() time.Duration { return r.timeout }

// Run starts name with args, feeds it stdin and returns what it wrote to
// stdout.
func (r *Runner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdin = bytes.NewReader(stdin)
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}
	cmd.WaitDelay = 100 * time.Millisecond

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("unable to start %s: %w", name, err)
	}
	err := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", name, ErrTimeout)
		}
		return nil, fmt.Errorf("%s cancelled: %w", name, ctxErr)
	}
	if err != nil {
		return nil, &ExitError{Name: name, Err: err, Stderr: strings.TrimSpace(stderr.String())}
	}

	return stdout.Bytes(), nil
}
