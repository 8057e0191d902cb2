// Package engine runs the external query engine for a single query.
//
// The engine is spawned directly with an argument vector, never through a
// shell, so the query always reaches it as exactly one argument no matter
// which quotes or metacharacters it contains.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"golang.org/x/sync/semaphore"

	"querysearch/internal/config"
	"querysearch/internal/models"
)

const (
	// stderrLimit bounds how much of the engine's stderr is kept for logs.
	stderrLimit = 64 * 1024

	// waitDelay is how long Wait keeps copying output after the engine is
	// killed, for children that inherited its pipes.
	waitDelay = 2 * time.Second
)

// Options configures a Runner.
type Options struct {
	Interpreter    string
	Script         string
	QueryFlag      string
	IndexDir       string
	Args           []string
	Env            []string
	WorkDir        string
	Timeout        time.Duration // zero means no timeout
	MaxOutputBytes int64         // zero means unlimited
	MaxConcurrent  int64         // zero means unlimited
}

// OptionsFromConfig extracts engine options from the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Interpreter:    cfg.EngineInterpreter,
		Script:         cfg.EngineScript,
		QueryFlag:      cfg.EngineQueryFlag,
		IndexDir:       cfg.EngineIndexDir,
		Args:           cfg.EngineArgs,
		Env:            cfg.EngineEnv,
		WorkDir:        cfg.EngineWorkDir,
		Timeout:        cfg.EngineTimeout,
		MaxOutputBytes: cfg.EngineMaxOutputBytes,
		MaxConcurrent:  cfg.EngineMaxConcurrent,
	}
}

// Invocation is one resolved engine command.
type Invocation struct {
	ID      string
	Program string
	Args    []string
	Dir     string
}

// String renders the invocation as a shell-quoted command line for logs.
// It is never executed.
func (i Invocation) String() string {
	return shellquote.Join(append([]string{i.Program}, i.Args...)...)
}

// Result describes a finished invocation.
type Result struct {
	Invocation   Invocation
	ExitCode     int // -1 when the engine did not exit normally
	Stderr       string
	BytesWritten int64
	Truncated    bool
	Duration     time.Duration
}

// Runner spawns the query engine.
type Runner struct {
	opts Options
	sem  *semaphore.Weighted
}

// New creates a runner. The interpreter is required.
func New(opts Options) (*Runner, error) {
	if opts.Interpreter == "" {
		return nil, ErrNoInterpreter
	}
	if opts.QueryFlag == "" {
		opts.QueryFlag = "-q"
	}

	r := &Runner{opts: opts}
	if opts.MaxConcurrent > 0 {
		r.sem = semaphore.NewWeighted(opts.MaxConcurrent)
	}
	return r, nil
}

// Build resolves the command line for query without running it.
func (r *Runner) Build(query string) Invocation {
	var args []string
	if r.opts.Script != "" {
		args = append(args, r.opts.Script)
	}
	args = append(args, r.opts.Args...)
	if r.opts.IndexDir != "" {
		args = append(args, "-d", r.opts.IndexDir)
	}
	args = append(args, r.opts.QueryFlag, query)

	return Invocation{
		ID:      uuid.NewString(),
		Program: r.opts.Interpreter,
		Args:    args,
		Dir:     r.opts.WorkDir,
	}
}

// Run executes the engine for query and copies its stdout to stdout as it
// is produced. It blocks until the engine exits and all output is copied.
// The returned Result is never nil. A non-nil error wraps ErrNotStarted,
// ErrNonZeroExit, ErrTimeout or the context error.
func (r *Runner) Run(ctx context.Context, query string, stdout io.Writer) (*Result, error) {
	inv := r.Build(query)
	res := &Result{Invocation: inv, ExitCode: -1}

	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return res, err
		}
		defer r.sem.Release(1)
	}

	execCtx := ctx
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(execCtx, inv.Program, inv.Args...)
	cmd.Dir = inv.Dir
	if len(r.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), r.opts.Env...)
	}
	cmd.WaitDelay = waitDelay

	out := &limitedWriter{w: stdout, max: r.opts.MaxOutputBytes}
	var stderrBuf bytes.Buffer
	cmd.Stdout = out
	cmd.Stderr = &limitedWriter{w: &stderrBuf, max: stderrLimit}

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.BytesWritten = out.written
	res.Truncated = out.truncated
	res.Stderr = stderrBuf.String()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		return res, nil
	}

	switch {
	case execCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil:
		return res, fmt.Errorf("%w after %s", ErrTimeout, r.opts.Timeout)
	case ctx.Err() != nil:
		return res, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, fmt.Errorf("%w: status %d", ErrNonZeroExit, res.ExitCode)
	}
	if cmd.Process == nil {
		return res, fmt.Errorf("%w: %v", ErrNotStarted, err)
	}
	return res, fmt.Errorf("engine output: %w", err)
}

// Outcome classifies a Run error for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return models.OutcomeOK
	case errors.Is(err, ErrTimeout):
		return models.OutcomeTimeout
	case errors.Is(err, ErrNotStarted):
		return models.OutcomeNotStarted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.OutcomeCanceled
	default:
		return models.OutcomeFailed
	}
}
