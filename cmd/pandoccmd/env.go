package main

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-rod/rod/lib/launcher"
	"golang.org/x/term"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
	"github.com/alnah/go-pandoc-cmd/internal/storage"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the process environment and every outside system a
// command touches.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	Runner   pandoccmd.Runner       // probes, fonts and conversions
	Streamer pandoccmd.StreamRunner // package manager output
	OpenKV   func(backend, path string) (storage.KV, error)

	CopyToClipboard func(string) error
	OpenFile        func(string) error
	LookBrowser     func() (string, bool)
	IsTerminal      func(io.Writer) bool
	GOOS            string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:             time.Now,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		Getenv:          os.Getenv,
		Environ:         os.Environ,
		Runner:          pandoccmd.ShellRunner{},
		Streamer:        pandoccmd.ShellRunner{},
		OpenKV:          storage.Open,
		CopyToClipboard: clipboard.WriteAll,
		OpenFile:        pandoccmd.OpenFile,
		LookBrowser:     launcher.LookPath,
		IsTerminal:      isTerminal,
		GOOS:            runtime.GOOS,
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
