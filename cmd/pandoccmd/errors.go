package main

import (
	"errors"
	"fmt"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
	"github.com/alnah/go-pandoc-cmd/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// withHint appends an actionable hint to errors that have one.
func withHint(err error) error {
	switch {
	case errors.Is(err, pandoccmd.ErrNoInput):
		return fmt.Errorf("%w%s", err, hints.ForNoInput())
	case errors.Is(err, pandoccmd.ErrConversionTimeout):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}
