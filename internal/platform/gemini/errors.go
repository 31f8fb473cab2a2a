package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyName is returned when trivia is requested for a blank character name.
	ErrEmptyName = errors.New("character name cannot be empty")
)
