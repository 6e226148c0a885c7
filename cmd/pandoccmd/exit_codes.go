package main

import (
	"errors"
	"os"

	pandoccmd "github.com/alnah/go-pandoc-cmd"
	"github.com/alnah/go-pandoc-cmd/internal/config"
	"github.com/alnah/go-pandoc-cmd/internal/storage"
)

// Exit codes for the pandoccmd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Success
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, settings, config or preset name
	ExitIO        = 3 // Missing input, unreadable store, file not found
	ExitToolchain = 4 // pandoc or a package manager failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Toolchain errors (exit 4)
	if errors.Is(err, pandoccmd.ErrConversionFailed) ||
		errors.Is(err, pandoccmd.ErrConversionTimeout) ||
		errors.Is(err, pandoccmd.ErrConversionInProgress) ||
		errors.Is(err, pandoccmd.ErrPlaceholderUnresolved) ||
		errors.Is(err, pandoccmd.ErrCommandFailed) {
		return ExitToolchain
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pandoccmd.ErrNoInput) ||
		errors.Is(err, pandoccmd.ErrInputNotFound) ||
		errors.Is(err, pandoccmd.ErrDarkHeaderWrite) ||
		errors.Is(err, pandoccmd.ErrOpenFile) ||
		errors.Is(err, pandoccmd.ErrPresetStore) ||
		errors.Is(err, storage.ErrStoreRead) ||
		errors.Is(err, storage.ErrStoreWrite) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, storage.ErrUnknownBackend) ||
		errors.Is(err, pandoccmd.ErrInvalidSetting) ||
		errors.Is(err, pandoccmd.ErrEmptyPresetName) ||
		errors.Is(err, pandoccmd.ErrPresetNotFound) ||
		errors.Is(err, pandoccmd.ErrUnknownDependency) ||
		errors.Is(err, pandoccmd.ErrUnsupportedInstall) ||
		errors.Is(err, pandoccmd.ErrUnknownInstallAction) ||
		errors.Is(err, pandoccmd.ErrUnknownTheme) {
		return ExitUsage
	}

	return ExitGeneral
}
