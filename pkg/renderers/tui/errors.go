package tui

import "errors"

var (
	// ErrAborted signals the user aborted a prompt (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoChoices is returned when a picker has nothing to offer.
	ErrNoChoices = errors.New("tui: nothing to choose from")
	// ErrInvalidChoice is returned when a driver answers outside the offered options.
	ErrInvalidChoice = errors.New("tui: choice out of range")
)
