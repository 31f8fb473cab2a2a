package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/domain/grading"
	"github.com/phrazzld/hero-flashcards/internal/domain/session"
	"github.com/phrazzld/hero-flashcards/internal/events"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/phrazzld/hero-flashcards/internal/redact"
)

// Navigation names a bounded, answer-free session move.
type Navigation string

// Navigations accepted by SessionService.Navigate.
const (
	NavAdvance          Navigation = "advance"
	NavRetreat          Navigation = "retreat"
	NavShuffle          Navigation = "shuffle"
	NavResetOrder       Navigation = "reset_order"
	NavNextQuestion     Navigation = "next_question"
	NavPreviousQuestion Navigation = "previous_question"
)

// ErrUnknownNavigation is returned for a Navigation outside the constants.
var ErrUnknownNavigation = fmt.Errorf("%w: unknown navigation", domain.ErrValidation)

// Started is the result of starting a session.
type Started struct {
	Snapshot session.Snapshot
	Source   catalog.Source
}

// Answered is the result of submitting a guess.
type Answered struct {
	Verdict  session.Verdict
	Snapshot session.Snapshot
}

// Mastered is the result of marking a character mastered.
type Mastered struct {
	Character domain.Character
	Snapshot  session.Snapshot
}

// SessionService hosts live quiz sessions.
type SessionService interface {
	Start(ctx context.Context) (Started, error)
	Snapshot(ctx context.Context, id uuid.UUID) (session.Snapshot, error)
	Navigate(ctx context.Context, id uuid.UUID, nav Navigation) (session.Snapshot, error)
	Submit(ctx context.Context, id uuid.UUID, guess string) (Answered, error)
	MarkMastered(ctx context.Context, id uuid.UUID, characterID int64) (Mastered, error)
	DismissFeedback(ctx context.Context, id uuid.UUID) (session.Snapshot, error)
	End(ctx context.Context, id uuid.UUID) error
	// Sweep drops sessions idle for longer than the session TTL and
	// reports how many were dropped.
	Sweep(ctx context.Context) int
}

// SessionOption configures a SessionService.
type SessionOption func(*sessionServiceImpl)

// WithFeedbackDelay sets how long feedback stays visible after a guess.
// Zero leaves feedback up until the next move.
func WithFeedbackDelay(d time.Duration) SessionOption {
	return func(s *sessionServiceImpl) {
		s.feedbackDelay = d
	}
}

// WithEventEmitter publishes session events to emitter.
func WithEventEmitter(emitter events.EventEmitter) SessionOption {
	return func(s *sessionServiceImpl) {
		s.emitter = emitter
	}
}

// WithGrader replaces the default grader.
func WithGrader(g session.Grader) SessionOption {
	return func(s *sessionServiceImpl) {
		s.grader = g
	}
}

// WithSessionTTL expires sessions that have not been touched for ttl.
// Zero keeps sessions until End.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(s *sessionServiceImpl) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now for session expiry.
func WithClock(now func() time.Time) SessionOption {
	return func(s *sessionServiceImpl) {
		s.now = now
	}
}

// WithSessionOptions passes options to every session created.
func WithSessionOptions(opts ...session.Option) SessionOption {
	return func(s *sessionServiceImpl) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// liveSession pairs a session with the lock serializing its mutations.
// touched holds the Unix nanoseconds of the last lookup.
type liveSession struct {
	mu      sync.Mutex
	s       *session.Session
	timer   *time.Timer
	touched atomic.Int64
}

// stop cancels any pending feedback timer.
func (l *liveSession) stop() {
	l.mu.Lock()
	if l.timer != nil {
		l.timer.Stop()
	}
	l.mu.Unlock()
}

type sessionServiceImpl struct {
	catalog       CatalogService
	grader        session.Grader
	emitter       events.EventEmitter
	feedbackDelay time.Duration
	ttl           time.Duration
	now           func() time.Time
	sessionOpts   []session.Option
	logger        *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*liveSession
}

var _ SessionService = (*sessionServiceImpl)(nil)

// NewSessionService creates a SessionService loading decks from catalogSvc.
func NewSessionService(
	catalogSvc CatalogService,
	logger *slog.Logger,
	opts ...SessionOption,
) (SessionService, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("%w: catalog service", ErrMissingDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrMissingDependency)
	}

	s := &sessionServiceImpl{
		catalog:  catalogSvc,
		grader:   grading.NewDefaultGrader(),
		now:      time.Now,
		logger:   logger.With("component", "session_service"),
		sessions: make(map[uuid.UUID]*liveSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start registers a loading session, loads its deck without holding any
// lock and then activates it. Expired sessions are swept first.
func (s *sessionServiceImpl) Start(ctx context.Context) (Started, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.Sweep(ctx)

	id := uuid.New()
	live := &liveSession{s: session.New(id, s.sessionOpts...)}
	live.touched.Store(s.now().UnixNano())

	s.mu.Lock()
	s.sessions[id] = live
	s.mu.Unlock()

	deck := s.catalog.LoadDeck(ctx)

	live.mu.Lock()
	err := live.s.Load(deck.Characters)
	snap := live.s.Snapshot()
	live.mu.Unlock()
	if err != nil {
		return Started{}, NewSessionServiceError("start", "failed to load deck", err)
	}

	log.InfoContext(ctx, "session started",
		"session_id", id,
		"source", deck.Source,
		"characters", len(deck.Characters),
		"status", snap.Status)

	s.emit(ctx, id, events.TypeSessionStarted, events.StartedPayload{
		Source:     string(deck.Source),
		Characters: len(deck.Characters),
	})

	return Started{Snapshot: snap, Source: deck.Source}, nil
}

// Snapshot returns the current state of a session.
func (s *sessionServiceImpl) Snapshot(_ context.Context, id uuid.UUID) (session.Snapshot, error) {
	var snap session.Snapshot
	err := s.with(id, func(sess *session.Session) error {
		snap = sess.Snapshot()
		return nil
	})
	return snap, err
}

// Navigate applies one navigation. Moves at a boundary are no-ops.
func (s *sessionServiceImpl) Navigate(
	ctx context.Context,
	id uuid.UUID,
	nav Navigation,
) (session.Snapshot, error) {
	var (
		snap    session.Snapshot
		changed bool
	)
	err := s.with(id, func(sess *session.Session) error {
		switch nav {
		case NavAdvance:
			changed = sess.Advance()
		case NavRetreat:
			changed = sess.Retreat()
		case NavShuffle:
			changed = sess.Shuffle()
		case NavResetOrder:
			changed = sess.ResetOrder()
		case NavNextQuestion:
			changed = sess.NextQuestion()
		case NavPreviousQuestion:
			changed = sess.PreviousQuestion()
		default:
			return fmt.Errorf("%w: %q", ErrUnknownNavigation, nav)
		}
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		return session.Snapshot{}, err
	}

	if changed {
		switch nav {
		case NavShuffle:
			s.emit(ctx, id, events.TypeDeckShuffled, nil)
		case NavResetOrder:
			s.emit(ctx, id, events.TypeDeckOrderReset, nil)
		}
	}
	return snap, nil
}

// Submit grades a guess and schedules the feedback to clear.
func (s *sessionServiceImpl) Submit(ctx context.Context, id uuid.UUID, guess string) (Answered, error) {
	var (
		result  Answered
		current domain.Character
	)
	err := s.withLive(id, func(live *liveSession) error {
		verdict, err := live.s.Submit(guess, s.grader)
		if err != nil {
			return err
		}
		current, _ = live.s.Current()
		s.scheduleClear(live, verdict.Token)
		result = Answered{Verdict: verdict, Snapshot: live.s.Snapshot()}
		return nil
	})
	if err != nil {
		return Answered{}, err
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "answer graded",
		"session_id", id,
		"character_id", current.ID,
		"question", result.Verdict.Question.Kind,
		"correct", result.Verdict.Correct,
		"rule", result.Verdict.Rule)

	s.emit(ctx, id, events.TypeAnswerSubmitted, events.AnswerPayload{
		CharacterID:  current.ID,
		QuestionKind: string(result.Verdict.Question.Kind),
		Correct:      result.Verdict.Correct,
		Rule:         string(result.Verdict.Rule),
		Streak:       result.Snapshot.Streak.Current,
	})
	return result, nil
}

// MarkMastered removes a character from the deck.
func (s *sessionServiceImpl) MarkMastered(
	ctx context.Context,
	id uuid.UUID,
	characterID int64,
) (Mastered, error) {
	var result Mastered
	err := s.with(id, func(sess *session.Session) error {
		c, err := sess.MarkMastered(characterID)
		if err != nil {
			return err
		}
		result = Mastered{Character: c, Snapshot: sess.Snapshot()}
		return nil
	})
	if err != nil {
		return Mastered{}, err
	}

	s.emit(ctx, id, events.TypeCharacterMastered, events.MasteredPayload{
		CharacterID: result.Character.ID,
		Name:        result.Character.Name,
		Remaining:   result.Snapshot.Total,
	})
	return result, nil
}

// DismissFeedback hides feedback before its delay runs out.
func (s *sessionServiceImpl) DismissFeedback(_ context.Context, id uuid.UUID) (session.Snapshot, error) {
	var snap session.Snapshot
	err := s.with(id, func(sess *session.Session) error {
		sess.DismissFeedback()
		snap = sess.Snapshot()
		return nil
	})
	return snap, err
}

// End forgets a session and stops its pending feedback timer.
func (s *sessionServiceImpl) End(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	live, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	live.stop()

	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "session ended", "session_id", id)
	s.emit(ctx, id, events.TypeSessionEnded, nil)
	return nil
}

// Sweep drops every session idle for longer than the TTL.
func (s *sessionServiceImpl) Sweep(ctx context.Context) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl).UnixNano()

	var expired []uuid.UUID
	var stale []*liveSession
	s.mu.Lock()
	for id, live := range s.sessions {
		if live.touched.Load() < cutoff {
			expired = append(expired, id)
			stale = append(stale, live)
			delete(s.sessions, id)
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	if len(expired) == 0 {
		return 0
	}
	for _, live := range stale {
		live.stop()
	}

	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "expired idle sessions",
		"expired", len(expired),
		"remaining", remaining)
	for _, id := range expired {
		s.emit(ctx, id, events.TypeSessionExpired, nil)
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until ctx is done.
func RunSweeper(ctx context.Context, svc SessionService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Sweep(ctx)
		}
	}
}

func (s *sessionServiceImpl) lookup(id uuid.UUID) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	live, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	live.touched.Store(s.now().UnixNano())
	return live, nil
}

func (s *sessionServiceImpl) withLive(id uuid.UUID, fn func(*liveSession) error) error {
	live, err := s.lookup(id)
	if err != nil {
		return err
	}
	live.mu.Lock()
	defer live.mu.Unlock()
	return fn(live)
}

func (s *sessionServiceImpl) with(id uuid.UUID, fn func(*session.Session) error) error {
	return s.withLive(id, func(live *liveSession) error {
		return fn(live.s)
	})
}

// scheduleClear must be called with live.mu held.
func (s *sessionServiceImpl) scheduleClear(live *liveSession, token session.FeedbackToken) {
	if s.feedbackDelay <= 0 {
		return
	}
	if live.timer != nil {
		live.timer.Stop()
	}
	live.timer = time.AfterFunc(s.feedbackDelay, func() {
		live.mu.Lock()
		defer live.mu.Unlock()
		live.s.ClearFeedback(token)
	})
}

// emit publishes an event. Delivery failures are logged and otherwise
// ignored: the event log is an audit trail, not session state.
func (s *sessionServiceImpl) emit(ctx context.Context, id uuid.UUID, eventType string, payload any) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewSessionEvent(id, eventType, payload)
	if err != nil {
		log.ErrorContext(ctx, "failed to build session event", "error", err, "event_type", eventType)
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.WarnContext(ctx, "failed to deliver session event",
			"error", redact.Error(err),
			"event_type", eventType,
			"session_id", id)
	}
}
