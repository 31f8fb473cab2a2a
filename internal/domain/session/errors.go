package session

import "errors"

// Session errors
var (
	// ErrCharacterNotFound is returned when a character ID is not in the deck.
	ErrCharacterNotFound = errors.New("character not in deck")

	// ErrNotActive is returned when an operation needs a displayed character
	// but the session is loading, exhausted or failed.
	ErrNotActive = errors.New("session has no active character")

	// ErrAlreadyLoaded is returned when Load is called after the deck has
	// been resolved.
	ErrAlreadyLoaded = errors.New("session already loaded")

	// ErrEmptyGuess is returned when a blank guess is submitted.
	ErrEmptyGuess = errors.New("guess cannot be empty")

	// ErrFeedbackPending is returned when a guess is submitted while feedback
	// for the previous guess is still shown.
	ErrFeedbackPending = errors.New("feedback for previous answer still shown")
)
