package api

import (
	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/domain/grading"
	"github.com/phrazzld/hero-flashcards/internal/domain/session"
)

// GradeRequest is the body of POST /api/grade. Either field may be empty;
// grading is defined for any pair of strings.
type GradeRequest struct {
	Guess  string `json:"guess" validate:"max=500"`
	Answer string `json:"answer" validate:"max=500"`
}

// GradeResponse reports a stateless grading decision.
type GradeResponse struct {
	Correct bool         `json:"correct"`
	Rule    grading.Rule `json:"rule"`
	Score   float64      `json:"score"`
}

// AnswerRequest is the body of POST /api/session/answers.
type AnswerRequest struct {
	Guess string `json:"guess" validate:"required,max=200"`
}

// MasteredRequest is the body of POST /api/session/mastered.
type MasteredRequest struct {
	CharacterID int64 `json:"character_id" validate:"required,gt=0"`
}

// CharacterResponse is a character as shown on a card front. Trivia fields
// are omitted because they are the answers.
type CharacterResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	FallbackImageURL string `json:"fallback_image_url"`
}

// QuestionResponse is the active question without its answer.
type QuestionResponse struct {
	Index  int                 `json:"index"`
	Kind   domain.QuestionKind `json:"kind"`
	Prompt string              `json:"prompt"`
}

// SessionResponse is the client view of a session snapshot.
type SessionResponse struct {
	ID        string              `json:"id"`
	Status    session.Status      `json:"status"`
	Shuffled  bool                `json:"shuffled"`
	Position  int                 `json:"position"`
	Total     int                 `json:"total"`
	Current   *CharacterResponse  `json:"current,omitempty"`
	Question  *QuestionResponse   `json:"question,omitempty"`
	Feedback  session.Feedback    `json:"feedback"`
	Streak    session.Streak      `json:"streak"`
	Mastered  []CharacterResponse `json:"mastered"`
	Remaining int                 `json:"remaining"`
}

// StartSessionResponse is returned by POST /api/sessions.
type StartSessionResponse struct {
	Token   string          `json:"token"`
	Source  catalog.Source  `json:"source"`
	Session SessionResponse `json:"session"`
}

// AnswerResponse is returned by POST /api/session/answers.
type AnswerResponse struct {
	Correct bool            `json:"correct"`
	Answer  string          `json:"answer"`
	Rule    grading.Rule    `json:"rule"`
	Score   float64         `json:"score"`
	Session SessionResponse `json:"session"`
}

// MasteredResponse is returned by POST /api/session/mastered.
type MasteredResponse struct {
	Mastered CharacterResponse `json:"mastered"`
	Session  SessionResponse   `json:"session"`
}

// presenter converts domain values to responses.
type presenter struct {
	tables *catalog.Tables
}

func (p presenter) character(c domain.Character) CharacterResponse {
	return CharacterResponse{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		ImageURL:         c.ImageURL,
		FallbackImageURL: p.tables.FallbackImage(c.Name),
	}
}

func (p presenter) session(snap session.Snapshot) SessionResponse {
	resp := SessionResponse{
		ID:        snap.ID.String(),
		Status:    snap.Status,
		Shuffled:  snap.Shuffled,
		Position:  snap.Position,
		Total:     snap.Total,
		Feedback:  snap.Feedback,
		Streak:    snap.Streak,
		Mastered:  make([]CharacterResponse, 0, len(snap.Mastered)),
		Remaining: snap.Total,
	}
	if snap.Current != nil {
		c := p.character(*snap.Current)
		resp.Current = &c
	}
	if snap.Question != nil {
		resp.Question = &QuestionResponse{
			Index:  snap.QuestionIndex,
			Kind:   snap.Question.Kind,
			Prompt: snap.Question.Prompt,
		}
	}
	for _, m := range snap.Mastered {
		resp.Mastered = append(resp.Mastered, p.character(m))
	}
	return resp
}
