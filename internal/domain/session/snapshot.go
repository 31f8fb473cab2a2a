package session

import (
	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/domain"
)

// Snapshot is a copy of a session's state at one point in time.
type Snapshot struct {
	ID       uuid.UUID
	Status   Status
	Shuffled bool

	// Position is the 0-based cursor into the active order, Total its length.
	Position int
	Total    int

	// Order lists character IDs in the active order.
	Order []int64

	// Current and Question are nil unless a character is displayed.
	Current       *domain.Character
	Question      *domain.Question
	QuestionIndex int

	Feedback Feedback
	Streak   Streak
	Mastered []domain.Character
	Failure  string
}
