package pandoccmd

import "errors"

// Sentinel errors for library operations.
var (
	// Snapshot boundary errors.
	ErrInvalidSetting = errors.New("invalid setting")

	// Conversion errors.
	ErrNoInput               = errors.New("no input file selected")
	ErrInputNotFound         = errors.New("input file not found")
	ErrConversionInProgress  = errors.New("a conversion is already running")
	ErrConversionFailed      = errors.New("conversion failed")
	ErrConversionTimeout     = errors.New("conversion timed out")
	ErrPlaceholderUnresolved = errors.New("dark mode header placeholder was not resolved")
	ErrDarkHeaderWrite       = errors.New("failed to write dark mode header")
	ErrOpenFile              = errors.New("failed to open file")

	// Toolchain errors.
	ErrCommandFailed        = errors.New("command failed")
	ErrUnknownDependency    = errors.New("unknown dependency")
	ErrUnsupportedInstall   = errors.New("no install recipe for dependency on this platform")
	ErrUnknownInstallAction = errors.New("unknown install action")
	ErrUnknownTheme         = errors.New("unknown highlight theme")

	// Preset errors.
	ErrEmptyPresetName = errors.New("preset name cannot be empty")
	ErrPresetNotFound  = errors.New("preset not found")
	ErrPresetStore     = errors.New("preset store unavailable")
)
