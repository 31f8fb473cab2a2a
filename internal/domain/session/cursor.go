package session

import "github.com/phrazzld/hero-flashcards/internal/domain"

// QuestionCursor tracks which of a character's questions is active.
// The zero value points at the first question.
type QuestionCursor struct {
	index int
}

// Index returns the active question index (0-based).
func (c *QuestionCursor) Index() int {
	return c.index
}

// Current returns the active question for the character.
func (c *QuestionCursor) Current(ch domain.Character) domain.Question {
	q, _ := domain.QuestionAt(ch, c.index)
	return q
}

// Next moves to the following question. It reports false at the last one.
func (c *QuestionCursor) Next() bool {
	if c.index >= domain.QuestionsPerCharacter-1 {
		return false
	}
	c.index++
	return true
}

// Previous moves to the preceding question. It reports false at the first one.
func (c *QuestionCursor) Previous() bool {
	if c.index <= 0 {
		return false
	}
	c.index--
	return true
}

// Reset returns to the first question.
func (c *QuestionCursor) Reset() {
	c.index = 0
}
