package magick

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/joeblew999/plat-titlecard/pkg/log"
)

// DefaultBinary is the ImageMagick entry point used when none is
// configured. ImageMagick 7 installs ship a "magick" binary instead;
// set it via WithBinary.
const DefaultBinary = "convert"

// ErrNotAvailable indicates the ImageMagick binary is not installed.
var ErrNotAvailable = errors.New("imagemagick binary not found")

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBinary overrides the convert binary name or path.
func WithBinary(bin string) RunnerOption {
	return func(r *Runner) {
		if bin != "" {
			r.binary = bin
		}
	}
}

// WithTimeout caps the duration of a single convert invocation.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// Runner executes convert invocations with a per-call timeout.
type Runner struct {
	binary  string
	timeout time.Duration
}

// NewRunner creates a Runner with a two minute default timeout.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		binary:  DefaultBinary,
		timeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Binary returns the configured binary name.
func (r *Runner) Binary() string {
	return r.binary
}

// Available reports whether the binary can be resolved on PATH.
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Version returns the first line of `convert -version`.
func (r *Runner) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, r.binary, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to query %s version: %w", r.binary, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// Convert runs one convert invocation, returning stderr in the error
// when the command fails.
func (r *Runner) Convert(ctx context.Context, args []string) error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return fmt.Errorf("%w: %s", ErrNotAvailable, r.binary)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()
	log.Debug("convert finished", "args", len(args), "duration", time.Since(start), "error", err)
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("convert failed: %w: %s", err, msg)
		}
		return fmt.Errorf("convert failed: %w", err)
	}
	return nil
}
