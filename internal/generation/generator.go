package generation

import (
	"context"

	"github.com/phrazzld/hero-flashcards/internal/domain"
)

// Generator produces trivia for a character the static tables do not know.
type Generator interface {
	// GenerateTrivia returns the real name, main powers and first appearance
	// for the named character. The description gives the model context.
	GenerateTrivia(ctx context.Context, name, description string) (domain.Trivia, error)
}
