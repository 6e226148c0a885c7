package process

// Notes:
// - KillProcessGroup: we only test with an invalid PID to verify the function
//   doesn't panic. Cannot test with PID 0 (kills current process group) or real PIDs.
// - Shell cancellation is exercised through the executor tests in the root package.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestExtendedPath - Platform-specific PATH extension
// ---------------------------------------------------------------------------

type fakeDirEntry struct {
	name string
	dir  bool
}

func (f fakeDirEntry) Name() string               { return f.name }
func (f fakeDirEntry) IsDir() bool                { return f.dir }
func (f fakeDirEntry) Type() fs.FileMode          { return 0 }
func (f fakeDirEntry) Info() (fs.FileInfo, error) { return nil, errors.New("unused") }

func noDir(string) ([]os.DirEntry, error) { return nil, os.ErrNotExist }

func TestExtendedPath(t *testing.T) {
	t.Parallel()

	sep := string(os.PathListSeparator)

	t.Run("darwin includes homebrew and TeX", func(t *testing.T) {
		t.Parallel()

		got := ExtendedPath("darwin", "/Users/ada", "/usr/bin", noDir)
		for _, want := range []string{"/opt/homebrew/bin", "/Library/TeX/texbin", "/Users/ada/.cargo/bin"} {
			if !strings.Contains(got, want) {
				t.Errorf("path missing %q: %s", want, got)
			}
		}
		if !strings.HasSuffix(got, sep+"/usr/bin") {
			t.Errorf("current PATH should come last: %s", got)
		}
	})

	t.Run("darwin discovers nvm versions", func(t *testing.T) {
		t.Parallel()

		readDir := func(string) ([]os.DirEntry, error) {
			return []os.DirEntry{fakeDirEntry{name: "v20.11.0", dir: true}, fakeDirEntry{name: "alias"}}, nil
		}
		got := ExtendedPath("darwin", "/Users/ada", "", readDir)
		if !strings.Contains(got, "/Users/ada/.nvm/versions/node/v20.11.0/bin") {
			t.Errorf("nvm version not added: %s", got)
		}
		if strings.Contains(got, "alias") {
			t.Errorf("non-directory entry added: %s", got)
		}
	})

	t.Run("linux includes texlive", func(t *testing.T) {
		t.Parallel()

		got := ExtendedPath("linux", "/home/ada", "/usr/bin", noDir)
		if !strings.Contains(got, "texlive") {
			t.Errorf("texlive dir missing: %s", got)
		}
		if !strings.HasPrefix(got, "/usr/local/bin") {
			t.Errorf("extra dirs should come first: %s", got)
		}
	})

	t.Run("other platforms keep PATH as is", func(t *testing.T) {
		t.Parallel()

		if got := ExtendedPath("windows", "C:\\Users\\ada", "C:\\bin", noDir); got != "C:\\bin" {
			t.Errorf("got %q, want unchanged", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestShell - Command construction
// ---------------------------------------------------------------------------

func TestShell_SetsExtendedPath(t *testing.T) {
	t.Parallel()

	cmd := Shell(t.Context(), "echo ok")

	var path string
	for _, kv := range cmd.Env {
		if strings.HasPrefix(kv, "PATH=") {
			if path != "" {
				t.Fatal("PATH set twice")
			}
			path = kv
		}
	}
	if path == "" {
		t.Fatal("PATH not set in child environment")
	}
	if cmd.WaitDelay != 2*time.Second {
		t.Errorf("WaitDelay = %v, want 2s", cmd.WaitDelay)
	}
	if cmd.Cancel == nil {
		t.Error("Cancel hook not installed")
	}
}
