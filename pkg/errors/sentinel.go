package errors

import "errors"

// Sentinel errors for conditions the command layer maps to exit codes.
var (
	// ErrMissingAPIKey indicates no API key could be resolved from the
	// environment, a .env file, or the credential store.
	ErrMissingAPIKey = errors.New("no API key configured")

	// ErrNoPathIndex indicates verification was requested before any sync
	// produced a path index.
	ErrNoPathIndex = errors.New("path index not found; run sync first")

	// ErrInterrupted indicates the run was cancelled by the user.
	ErrInterrupted = errors.New("interrupted")
)
