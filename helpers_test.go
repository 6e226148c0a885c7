package pandoccmd

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// fixedNow is the captured clock for every test snapshot.
var fixedNow = time.Date(2025, time.March, 14, 9, 26, 0, 0, time.UTC)

func testCapture(input, source string) Capture {
	return Capture{InputPath: input, SourceText: source, Now: fixedNow, User: "ada"}
}

func mustSnapshot(t *testing.T, values Values, input, source string) Snapshot {
	t.Helper()
	s, err := NewSnapshot(values, testCapture(input, source))
	if err != nil {
		t.Fatalf("NewSnapshot(%v) error = %v", values, err)
	}
	return s
}

func hasToken(tokens []string, tok string) bool {
	return indexOf(tokens, tok) >= 0
}

func indexOf(tokens []string, tok string) int {
	for i, t := range tokens {
		if t == tok {
			return i
		}
	}
	return -1
}

func countPrefix(tokens []string, prefix string) int {
	n := 0
	for _, t := range tokens {
		if strings.HasPrefix(t, prefix) {
			n++
		}
	}
	return n
}

// fakeRunner answers Run calls from a table keyed by command line and
// records every line it sees.
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]fakeResult
	lines   []string
	block   chan struct{} // when set, Run waits for it or ctx
}

type fakeResult struct {
	stdout, stderr string
	err            error
}

func (f *fakeRunner) Run(ctx context.Context, line string) (string, string, error) {
	f.mu.Lock()
	f.lines = append(f.lines, line)
	res, ok := f.results[line]
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}
	if !ok {
		return "", "not found", errFakeMissing
	}
	return res.stdout, res.stderr, res.err
}

func (f *fakeRunner) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

type fakeError string

func (e fakeError) Error() string { return string(e) }

const errFakeMissing = fakeError("exit status 127")
