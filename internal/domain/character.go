package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Character validation errors
var (
	// ErrCharacterNameEmpty is returned when a character has a blank name.
	ErrCharacterNameEmpty = errors.New("character name cannot be empty")
)

// Character is a comic-book character presented on a flashcard.
// A Character is immutable for the lifetime of a session; identity is ID.
type Character struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url"`
	RealName        string `json:"real_name"`
	Powers          string `json:"powers"`
	FirstAppearance string `json:"first_appearance"`
}

// Validate checks if the Character has valid data.
func (c Character) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrCharacterNameEmpty)
	}
	return nil
}

// Trivia is the quiz material attached to a character: the canonical answers
// for each question kind.
type Trivia struct {
	RealName        string `json:"real_name"`
	Powers          string `json:"powers"`
	FirstAppearance string `json:"first_appearance"`
}

// WithTrivia returns a copy of the character carrying the given trivia.
// Empty trivia fields leave the existing values untouched.
func (c Character) WithTrivia(t Trivia) Character {
	if t.RealName != "" {
		c.RealName = t.RealName
	}
	if t.Powers != "" {
		c.Powers = t.Powers
	}
	if t.FirstAppearance != "" {
		c.FirstAppearance = t.FirstAppearance
	}
	return c
}

// IndexOf returns the position of the character with the given ID, or -1.
func IndexOf(chars []Character, id int64) int {
	for i, c := range chars {
		if c.ID == id {
			return i
		}
	}
	return -1
}
