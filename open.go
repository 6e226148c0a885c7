package pandoccmd

import (
	"fmt"

	"github.com/pkg/browser"

	"github.com/alnah/go-pandoc-cmd/internal/fileutil"
)

// openWith is replaced in tests.
var openWith = browser.OpenFile

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	return fileutil.FileExists(path)
}

// OpenFile opens path with the operating system's default handler.
func OpenFile(path string) error {
	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s: not found", ErrOpenFile, path)
	}
	if err := openWith(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenFile, path, err)
	}
	return nil
}
