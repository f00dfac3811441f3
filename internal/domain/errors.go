package domain

import "errors"

// Domain errors represent error conditions in the animforge domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrExportInProgress is returned when an export is requested while one is active.
	ErrExportInProgress = errors.New("animforge: export already in progress")

	// ErrEmptyRegistry is returned when an operation requires at least one frame.
	ErrEmptyRegistry = errors.New("animforge: frame registry is empty")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("animforge: invalid configuration")

	// ErrProbeFailed is returned when the reference image cannot be decoded.
	ErrProbeFailed = errors.New("animforge: dimension probe failed")

	// ErrEncodeFailed is returned when archive assembly fails.
	ErrEncodeFailed = errors.New("animforge: archive encoding failed")

	// ErrAlreadyRunning is returned when Start() is called on a running player.
	ErrAlreadyRunning = errors.New("animforge: player already running")

	// ErrNotRunning is returned when Stop() is called on a stopped player.
	ErrNotRunning = errors.New("animforge: player not running")
)
