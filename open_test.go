package pandoccmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Not parallel: swaps the package-level opener.
func TestOpenFile(t *testing.T) {
	var opened string
	orig := openWith
	t.Cleanup(func() { openWith = orig })

	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}

	openWith = func(p string) error {
		opened = p
		return nil
	}
	if err := OpenFile(path); err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if opened != path {
		t.Errorf("opened %q, want %q", opened, path)
	}

	openWith = func(string) error { return errors.New("no handler") }
	if err := OpenFile(path); !errors.Is(err, ErrOpenFile) {
		t.Errorf("handler failure error = %v", err)
	}

	if err := OpenFile(filepath.Join(t.TempDir(), "gone.pdf")); !errors.Is(err, ErrOpenFile) {
		t.Errorf("missing file error = %v", err)
	}
	if !FileExists(path) || FileExists(filepath.Dir(path)) {
		t.Error("FileExists must accept files and reject directories")
	}
}
