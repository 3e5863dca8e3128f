package tui

import "errors"

var (
	// ErrAborted signals the user interrupted a prompt (Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoDriver is returned when the renderer has no prompt driver.
	ErrNoDriver = errors.New("tui: prompt driver is nil")
	// ErrTooManyAttempts stops a session that keeps failing submission
	// without the user changing anything.
	ErrTooManyAttempts = errors.New("tui: too many failed submissions")
)
