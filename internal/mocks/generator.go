package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateTriviaFn allows test cases to mock the GenerateTrivia behavior
	GenerateTriviaFn func(ctx context.Context, name, description string) (domain.Trivia, error)

	// Default response values
	Trivia domain.Trivia
	Err    error

	// Call tracking for verification
	GenerateTriviaCalls struct {
		// mu protects the call tracking state for concurrent callers
		mu sync.Mutex

		Count int
		Names []string
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateTrivia implements the generation.Generator interface
func (m *MockGenerator) GenerateTrivia(ctx context.Context, name, description string) (domain.Trivia, error) {
	m.GenerateTriviaCalls.mu.Lock()
	m.GenerateTriviaCalls.Count++
	m.GenerateTriviaCalls.Names = append(m.GenerateTriviaCalls.Names, name)
	m.GenerateTriviaCalls.mu.Unlock()

	if m.GenerateTriviaFn != nil {
		return m.GenerateTriviaFn(ctx, name, description)
	}
	return m.Trivia, m.Err
}

// CalledWith returns the names passed to GenerateTrivia so far.
func (m *MockGenerator) CalledWith() []string {
	m.GenerateTriviaCalls.mu.Lock()
	defer m.GenerateTriviaCalls.mu.Unlock()
	return append([]string(nil), m.GenerateTriviaCalls.Names...)
}

// NewMockGeneratorWithTrivia creates a MockGenerator that returns trivia.
func NewMockGeneratorWithTrivia(trivia domain.Trivia) *MockGenerator {
	return &MockGenerator{Trivia: trivia}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return NewMockGeneratorWithError(generation.ErrGenerationFailed)
}

// MockGeneratorWithContentBlocked creates a MockGenerator that simulates content being blocked
func MockGeneratorWithContentBlocked() *MockGenerator {
	return NewMockGeneratorWithError(generation.ErrContentBlocked)
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateTriviaCalls.mu.Lock()
	defer m.GenerateTriviaCalls.mu.Unlock()

	m.GenerateTriviaCalls.Count = 0
	m.GenerateTriviaCalls.Names = nil
}
