package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalid is returned when the user stops retrying, or the round limit
	// is reached, while the form still has errors. The returned error also
	// wraps the form.Failure.
	ErrInvalid = errors.New("tui: form is invalid")
)
