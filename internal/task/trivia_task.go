package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/generation"
)

// TriviaEnrichmentTask asks a generator for one character's trivia and
// writes the enriched character into a caller-owned slot.
type TriviaEnrichmentTask struct {
	id        uuid.UUID
	character domain.Character
	generator generation.Generator
	slot      *domain.Character

	mu     sync.Mutex
	status TaskStatus
}

var _ Task = (*TriviaEnrichmentTask)(nil)

// NewTriviaEnrichmentTask creates a task that enriches c into slot. slot is
// written only on success.
func NewTriviaEnrichmentTask(
	c domain.Character,
	generator generation.Generator,
	slot *domain.Character,
) *TriviaEnrichmentTask {
	return &TriviaEnrichmentTask{
		id:        uuid.New(),
		character: c,
		generator: generator,
		slot:      slot,
		status:    TaskStatusPending,
	}
}

// ID returns the task's unique identifier.
func (t *TriviaEnrichmentTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeTriviaEnrichment.
func (t *TriviaEnrichmentTask) Type() string { return TaskTypeTriviaEnrichment }

// Character returns the character being enriched.
func (t *TriviaEnrichmentTask) Character() domain.Character { return t.character }

// Status returns the current task status.
func (t *TriviaEnrichmentTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *TriviaEnrichmentTask) setStatus(s TaskStatus) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Execute generates the trivia.
func (t *TriviaEnrichmentTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)

	trivia, err := t.generator.GenerateTrivia(ctx, t.character.Name, t.character.Description)
	if err != nil {
		t.setStatus(TaskStatusFailed)
		return fmt.Errorf("trivia for %q: %w", t.character.Name, err)
	}

	*t.slot = t.character.WithTrivia(trivia)
	t.setStatus(TaskStatusCompleted)
	return nil
}
