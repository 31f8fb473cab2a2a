package session

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/domain/grading"
)

// Status is the lifecycle state of a session.
type Status string

// Session statuses.
const (
	// StatusLoading means the character source has not resolved yet.
	StatusLoading Status = "loading"
	// StatusActive means the deck is non-empty and a character is displayed.
	StatusActive Status = "active"
	// StatusExhausted means every character has been mastered (or none were
	// loaded) and nothing is displayed.
	StatusExhausted Status = "exhausted"
	// StatusFailed is a terminal error state. Catalog failures fall back to
	// the built-in deck, so no documented flow enters it.
	StatusFailed Status = "failed"
)

// Grader judges a guess against a canonical answer.
type Grader interface {
	Explain(guess, canonical string) grading.Result
}

// Verdict is the outcome of a submitted guess.
type Verdict struct {
	Correct  bool
	Rule     grading.Rule
	Score    float64
	Question domain.Question
	Token    FeedbackToken
}

// Session is the quiz state machine for one user.
type Session struct {
	id            uuid.UUID
	status        Status
	deck          *Deck
	shuffleActive bool
	cursor        int
	questions     QuestionCursor
	mastered      []domain.Character
	streak        Streak
	feedback      feedbackState
	failure       string
	intn          func(n int) int
}

// Option configures a Session.
type Option func(*Session)

// WithRandom sets the source of uniform random integers in [0, n) used by
// Shuffle.
func WithRandom(intn func(n int) int) Option {
	return func(s *Session) {
		if intn != nil {
			s.intn = intn
		}
	}
}

// New creates a session in the loading state.
func New(id uuid.UUID, opts ...Option) *Session {
	s := &Session{
		id:     id,
		status: StatusLoading,
		deck:   NewDeck(nil),
		intn:   rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// Load resolves the loading state with the characters to study, moving to
// active, or to exhausted when chars is empty.
func (s *Session) Load(chars []domain.Character) error {
	if s.status != StatusLoading {
		return ErrAlreadyLoaded
	}
	s.deck = NewDeck(chars)
	s.cursor = 0
	s.shuffleActive = false
	s.questions.Reset()
	s.refreshStatus()
	return nil
}

// Fail moves a loading session to the failed state.
func (s *Session) Fail(reason string) {
	if s.status != StatusLoading {
		return
	}
	s.status = StatusFailed
	s.failure = reason
}

// Current returns the displayed character.
func (s *Session) Current() (domain.Character, bool) {
	if s.status != StatusActive {
		return domain.Character{}, false
	}
	seq := s.active()
	if s.cursor < 0 || s.cursor >= len(seq) {
		return domain.Character{}, false
	}
	return seq[s.cursor], true
}

// CurrentQuestion returns the active question for the displayed character.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	ch, ok := s.Current()
	if !ok {
		return domain.Question{}, false
	}
	return s.questions.Current(ch), true
}

// Advance moves to the next character. It does nothing at the last one.
func (s *Session) Advance() bool {
	if s.status != StatusActive || s.cursor >= len(s.active())-1 {
		return false
	}
	s.move(func() { s.cursor++ })
	return true
}

// Retreat moves to the previous character. It does nothing at the first one.
func (s *Session) Retreat() bool {
	if s.status != StatusActive || s.cursor <= 0 {
		return false
	}
	s.move(func() { s.cursor-- })
	return true
}

// Shuffle replaces the shuffled order with a uniform random permutation of
// the currently active order, activates it and returns to the first card.
func (s *Session) Shuffle() bool {
	if s.status != StatusActive {
		return false
	}
	s.deck.shuffle(s.active(), s.intn)
	s.shuffleActive = true
	s.cursor = 0
	s.resetCard()
	return true
}

// ResetOrder switches back to canonical order and returns to the first card.
func (s *Session) ResetOrder() bool {
	if s.status != StatusActive {
		return false
	}
	s.shuffleActive = false
	s.cursor = 0
	s.resetCard()
	return true
}

// RecordAnswer updates the streak counters.
func (s *Session) RecordAnswer(correct bool) {
	s.streak.Record(correct)
}

// MarkMastered moves the character with the given ID out of the deck and
// into the mastered set. When the cursor ends up past the shortened deck it
// steps back one place.
func (s *Session) MarkMastered(id int64) (domain.Character, error) {
	if s.status != StatusActive {
		return domain.Character{}, ErrNotActive
	}

	var removed domain.Character
	var err error
	s.move(func() {
		var ok bool
		removed, ok = s.deck.remove(id)
		if !ok {
			err = ErrCharacterNotFound
			return
		}
		s.mastered = append(s.mastered, removed)

		if n := len(s.active()); s.cursor >= n && s.cursor > 0 {
			s.cursor--
		}
		s.refreshStatus()
	})
	if err != nil {
		return domain.Character{}, err
	}
	return removed, nil
}

// NextQuestion moves to the next question about the displayed character.
func (s *Session) NextQuestion() bool {
	if s.status != StatusActive || !s.questions.Next() {
		return false
	}
	s.feedback.clear()
	return true
}

// PreviousQuestion moves to the previous question about the displayed character.
func (s *Session) PreviousQuestion() bool {
	if s.status != StatusActive || !s.questions.Previous() {
		return false
	}
	s.feedback.clear()
	return true
}

// Submit grades a guess for the active question, records the outcome in the
// streak and shows feedback. Guesses are refused while feedback is visible.
func (s *Session) Submit(guess string, g Grader) (Verdict, error) {
	ch, ok := s.Current()
	if !ok {
		return Verdict{}, ErrNotActive
	}
	if strings.TrimSpace(guess) == "" {
		return Verdict{}, ErrEmptyGuess
	}
	if s.feedback.Visible {
		return Verdict{}, ErrFeedbackPending
	}

	q := s.questions.Current(ch)
	result := g.Explain(guess, q.Answer)
	s.RecordAnswer(result.Correct)
	token := s.feedback.show(result.Correct, guess, q.Answer)

	return Verdict{
		Correct:  result.Correct,
		Rule:     result.Rule,
		Score:    result.Score,
		Question: q,
		Token:    token,
	}, nil
}

// ClearFeedback hides the feedback shown under token. It reports false when
// that feedback was already replaced or cleared.
func (s *Session) ClearFeedback(token FeedbackToken) bool {
	return s.feedback.clearIfCurrent(token)
}

// DismissFeedback hides whatever feedback is visible.
func (s *Session) DismissFeedback() {
	s.feedback.clear()
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:            s.id,
		Status:        s.status,
		Shuffled:      s.shuffleActive,
		Position:      s.cursor,
		Total:         len(s.active()),
		QuestionIndex: s.questions.Index(),
		Feedback:      s.feedback.Feedback,
		Streak:        s.streak,
		Mastered:      clone(s.mastered),
		Failure:       s.failure,
	}

	for _, c := range s.active() {
		snap.Order = append(snap.Order, c.ID)
	}

	if ch, ok := s.Current(); ok {
		snap.Current = &ch
		q := s.questions.Current(ch)
		snap.Question = &q
	}

	return snap
}

func (s *Session) active() []domain.Character {
	if s.deck == nil {
		return nil
	}
	return s.deck.sequence(s.shuffleActive)
}

// move applies a cursor or deck change and resets the card state when the
// displayed character changed.
func (s *Session) move(change func()) {
	before, hadBefore := s.Current()
	change()
	after, hasAfter := s.Current()
	if hadBefore != hasAfter || before.ID != after.ID {
		s.resetCard()
	}
}

func (s *Session) resetCard() {
	s.questions.Reset()
	s.feedback.clear()
}

func (s *Session) refreshStatus() {
	if s.deck.Len() == 0 {
		s.status = StatusExhausted
		s.cursor = 0
		return
	}
	s.status = StatusActive
}
