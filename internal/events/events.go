package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session event types.
const (
	TypeSessionStarted    = "session.started"
	TypeAnswerSubmitted   = "answer.submitted"
	TypeCharacterMastered = "character.mastered"
	TypeDeckShuffled      = "deck.shuffled"
	TypeDeckOrderReset    = "deck.order_reset"
	TypeSessionEnded      = "session.ended"
	TypeSessionExpired    = "session.expired"
)

// SessionEvent records something that happened in one quiz session.
type SessionEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// SessionID identifies the session the event belongs to
	SessionID uuid.UUID `json:"session_id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// AnswerPayload is the payload of TypeAnswerSubmitted.
type AnswerPayload struct {
	CharacterID  int64  `json:"character_id"`
	QuestionKind string `json:"question_kind"`
	Correct      bool   `json:"correct"`
	Rule         string `json:"rule"`
	Streak       int    `json:"streak"`
}

// MasteredPayload is the payload of TypeCharacterMastered.
type MasteredPayload struct {
	CharacterID int64  `json:"character_id"`
	Name        string `json:"name"`
	Remaining   int    `json:"remaining"`
}

// StartedPayload is the payload of TypeSessionStarted.
type StartedPayload struct {
	Source     string `json:"source"`
	Characters int    `json:"characters"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *SessionEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewSessionEvent creates a SessionEvent with the specified type and payload.
// A nil payload is stored as JSON null.
func NewSessionEvent(sessionID uuid.UUID, eventType string, payload any) (*SessionEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &SessionEvent{
		ID:        uuid.New(),
		SessionID: sessionID,
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *SessionEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *SessionEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *SessionEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *SessionEvent) error
}
