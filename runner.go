package pandoccmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/alnah/go-pandoc-cmd/internal/process"
)

// maxLineSize bounds a single streamed output line.
const maxLineSize = 1 << 20

// Runner runs a command line through the platform shell.
type Runner interface {
	Run(ctx context.Context, line string) (stdout, stderr string, err error)
}

// StreamRunner runs a command line and reports each output line as it
// arrives.
type StreamRunner interface {
	Stream(ctx context.Context, line string, onLine func(string)) error
}

// Compile-time interface implementation checks.
var (
	_ Runner       = (*ShellRunner)(nil)
	_ StreamRunner = (*ShellRunner)(nil)
)

// ShellRunner implements Runner and StreamRunner with sh -c (cmd /C on
// Windows), an extended PATH and process-group cancellation.
type ShellRunner struct{}

// Run executes line and returns its captured output.
func (ShellRunner) Run(ctx context.Context, line string) (string, string, error) {
	cmd := process.Shell(ctx, line)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Stream executes line and calls onLine for every line of combined
// stdout and stderr. Once ctx is done no further lines are reported.
func (ShellRunner) Stream(ctx context.Context, line string, onLine func(string)) error {
	cmd := process.Shell(ctx, line)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting command: %w", err)
	}

	scanDone := make(chan struct{})
	go func() {
		defer close(scanDone)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			if ctx.Err() != nil {
				continue // drain without reporting
			}
			if onLine != nil {
				onLine(scanner.Text())
			}
		}
		// Keep the writer unblocked if scanning stopped early.
		_, _ = io.Copy(io.Discard, pr)
	}()

	err := cmd.Wait()
	_ = pw.Close()
	<-scanDone

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
