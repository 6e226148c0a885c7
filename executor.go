package pandoccmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alnah/go-pandoc-cmd/internal/fileutil"
)

// DefaultTimeout bounds one conversion. First runs of TeX engines may
// download packages, so it is generous.
const DefaultTimeout = 5 * time.Minute

// darkHeaderTeX is the LaTeX header written for dark mode PDF output.
const darkHeaderTeX = `\usepackage{xcolor}
\definecolor{darkbg}{HTML}{1E1E2E}
\definecolor{darkfg}{HTML}{CDD6F4}
\pagecolor{darkbg}
\color{darkfg}
`

// HeaderWriter writes a LaTeX header file and returns its path and a
// cleanup function.
type HeaderWriter func(content string) (path string, cleanup func(), err error)

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pandoccmd: WithTimeout duration must be positive")
	}
	return func(e *Executor) {
		e.timeout = d
	}
}

// WithRunner replaces the shell runner, e.g. with a fake in tests.
func WithRunner(r Runner) Option {
	return func(e *Executor) {
		e.runner = r
	}
}

// WithHeaderWriter replaces how the dark mode header file is written.
func WithHeaderWriter(w HeaderWriter) Option {
	return func(e *Executor) {
		e.writeHeader = w
	}
}

// Result describes a finished conversion.
type Result struct {
	Line       string // command line actually run
	OutputPath string // set by Convert
	Stdout     string
	Stderr     string
	Duration   time.Duration
}

// Executor runs built commands, one at a time.
type Executor struct {
	runner      Runner
	timeout     time.Duration
	writeHeader HeaderWriter
	busy        atomic.Bool
}

// NewExecutor creates an Executor using the platform shell.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		runner:  ShellRunner{},
		timeout: DefaultTimeout,
		writeHeader: func(content string) (string, func(), error) {
			return fileutil.WriteTempFile(content, "tex")
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Busy reports whether a conversion is in flight.
func (e *Executor) Busy() bool { return e.busy.Load() }

// Convert builds the command for s and runs it. The snapshot must name an
// existing input file.
func (e *Executor) Convert(ctx context.Context, s Snapshot) (*Result, error) {
	if strings.TrimSpace(s.InputPath) == "" {
		return nil, ErrNoInput
	}
	if !fileutil.FileExists(s.InputPath) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, s.InputPath)
	}

	res, err := e.Execute(ctx, Build(s))
	if err != nil {
		return nil, err
	}
	res.OutputPath = s.OutputPath()
	return res, nil
}

// Execute runs cmd. A second call while one is running fails with
// ErrConversionInProgress; a failed run releases the executor for retry.
// Failures wrap ErrConversionFailed with pandoc's raw stderr and stdout.
func (e *Executor) Execute(ctx context.Context, cmd Command) (*Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrConversionInProgress
	}
	defer e.busy.Store(false)

	line, cleanup, err := e.resolveDarkHeader(cmd.Line())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if strings.Contains(line, DarkHeaderPlaceholder) {
		return nil, ErrPlaceholderUnresolved
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, err := e.runner.Run(ctx, line)
	res := &Result{Line: line, Stdout: stdout, Stderr: stderr, Duration: time.Since(start)}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrConversionTimeout, e.timeout)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		output := strings.TrimSpace(stderr + "\n" + stdout)
		if output == "" {
			output = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrConversionFailed, output)
	}
	return res, nil
}

// resolveDarkHeader writes the dark mode header and substitutes its path
// for the quoted placeholder. Lines without the placeholder pass through.
func (e *Executor) resolveDarkHeader(line string) (string, func(), error) {
	noop := func() {}
	quoted := quoteDouble(DarkHeaderPlaceholder)
	if !strings.Contains(line, quoted) {
		return line, noop, nil
	}

	path, cleanup, err := e.writeHeader(darkHeaderTeX)
	if err != nil {
		return "", noop, fmt.Errorf("%w: %v", ErrDarkHeaderWrite, err)
	}
	if cleanup == nil {
		cleanup = noop
	}
	return strings.ReplaceAll(line, quoted, quoteDouble(path)), cleanup, nil
}
