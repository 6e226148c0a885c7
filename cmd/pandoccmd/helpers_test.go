package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-pandoc-cmd/internal/storage"
)

// fakeRunner answers every command through handle and records the lines.
type fakeRunner struct {
	mu     sync.Mutex
	lines  []string
	handle func(line string) (stdout, stderr string, err error)
}

func (f *fakeRunner) Run(_ context.Context, line string) (string, string, error) {
	f.mu.Lock()
	f.lines = append(f.lines, line)
	f.mu.Unlock()
	if f.handle == nil {
		return "", "not found", errors.New("exit status 127")
	}
	return f.handle(line)
}

func (f *fakeRunner) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

func (f *fakeRunner) ran(prefix string) bool {
	for _, l := range f.seen() {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

// succeed makes every command exit 0 with stdout.
func succeed(stdout string) func(string) (string, string, error) {
	return func(string) (string, string, error) { return stdout, "", nil }
}

// fakeStreamer replays lines for every command.
type fakeStreamer struct {
	lines []string
	err   error
	ran   []string
}

func (f *fakeStreamer) Stream(_ context.Context, line string, onLine func(string)) error {
	f.ran = append(f.ran, line)
	for _, l := range f.lines {
		onLine(l)
	}
	return f.err
}

// testEnv is an Environment wired to in-memory fakes.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	runner   *fakeRunner
	streamer *fakeStreamer
	kv       storage.Memory
	vars     map[string]string
	copied   []string
	opened   []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		runner:   &fakeRunner{},
		streamer: &fakeStreamer{},
		kv:       storage.Memory{},
		vars: map[string]string{
			envPresetPath: filepath.Join(t.TempDir(), "presets.json"),
		},
	}
	te.Environment = &Environment{
		Now:      func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) },
		Stdout:   te.stdout,
		Stderr:   te.stderr,
		Getenv:   func(k string) string { return te.vars[k] },
		Environ:  func() []string { return environFrom(te.vars) },
		Runner:   te.runner,
		Streamer: te.streamer,
		OpenKV: func(string, string) (storage.KV, error) {
			return te.kv, nil
		},
		CopyToClipboard: func(s string) error {
			te.copied = append(te.copied, s)
			return nil
		},
		OpenFile: func(p string) error {
			te.opened = append(te.opened, p)
			return nil
		},
		LookBrowser: func() (string, bool) { return "", false },
		IsTerminal:  func(io.Writer) bool { return false },
		GOOS:        "linux",
	}
	return te
}

func (te *testEnv) run(args ...string) int {
	return runMain(context.Background(), append([]string{"pandoccmd"}, args...), te.Environment)
}

func environFrom(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for k, v := range vars {
		out = append(out, k+"="+v)
	}
	return out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
