package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/domain/session"
	"github.com/phrazzld/hero-flashcards/internal/events"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeck() []domain.Character {
	return []domain.Character{
		{ID: 1, Name: "Spider-Man", RealName: "Peter Parker", Powers: "Spider-sense", FirstAppearance: "Amazing Fantasy #15"},
		{ID: 2, Name: "Iron Man", RealName: "Tony Stark", Powers: "Powered armor", FirstAppearance: "Tales of Suspense #39"},
		{ID: 3, Name: "Thor", RealName: "Thor Odinson", Powers: "Mjolnir", FirstAppearance: "Journey into Mystery #83"},
	}
}

func newSessions(t *testing.T, chars []domain.Character, opts ...SessionOption) (SessionService, *recordingEmitter) {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	emitter := &recordingEmitter{}
	opts = append([]SessionOption{WithEventEmitter(emitter)}, opts...)
	svc, err := NewSessionService(
		stubCatalog{deck: LoadedDeck{Characters: chars, Source: catalog.SourceFallback}},
		log,
		opts...,
	)
	require.NoError(t, err)
	return svc, emitter
}

func TestNewSessionService_MissingDependencies(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	_, err := NewSessionService(nil, log)
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewSessionService(stubCatalog{}, nil)
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestSessionService_Start(t *testing.T) {
	t.Parallel()

	t.Run("non-empty deck is active", func(t *testing.T) {
		t.Parallel()
		svc, emitter := newSessions(t, testDeck())

		started, err := svc.Start(context.Background())
		require.NoError(t, err)

		assert.Equal(t, catalog.SourceFallback, started.Source)
		assert.Equal(t, session.StatusActive, started.Snapshot.Status)
		assert.Equal(t, []int64{1, 2, 3}, started.Snapshot.Order)
		require.NotNil(t, started.Snapshot.Current)
		assert.Equal(t, "Spider-Man", started.Snapshot.Current.Name)
		assert.Equal(t, []string{events.TypeSessionStarted}, emitter.types())

		var payload events.StartedPayload
		require.NoError(t, emitter.events[0].UnmarshalPayload(&payload))
		assert.Equal(t, events.StartedPayload{Source: "fallback", Characters: 3}, payload)
	})

	t.Run("empty deck is exhausted", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSessions(t, nil)

		started, err := svc.Start(context.Background())
		require.NoError(t, err)
		assert.Equal(t, session.StatusExhausted, started.Snapshot.Status)
		assert.Nil(t, started.Snapshot.Current)
	})
}

func TestSessionService_UnknownSession(t *testing.T) {
	t.Parallel()

	svc, _ := newSessions(t, testDeck())
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.Snapshot(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Navigate(ctx, id, NavAdvance)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Submit(ctx, id, "Peter Parker")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.MarkMastered(ctx, id, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.DismissFeedback(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.End(ctx, id), ErrSessionNotFound)
}

func TestSessionService_Navigate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pickFirst := session.WithRandom(func(n int) int { return 0 })
	svc, emitter := newSessions(t, testDeck(), WithSessionOptions(pickFirst))

	started, err := svc.Start(ctx)
	require.NoError(t, err)
	id := started.Snapshot.ID

	snap, err := svc.Navigate(ctx, id, NavRetreat)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Position)

	snap, err = svc.Navigate(ctx, id, NavAdvance)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Position)

	snap, err = svc.Navigate(ctx, id, NavNextQuestion)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.QuestionIndex)
	assert.Equal(t, domain.QuestionPowers, snap.Question.Kind)

	snap, err = svc.Navigate(ctx, id, NavPreviousQuestion)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.QuestionIndex)

	snap, err = svc.Navigate(ctx, id, NavShuffle)
	require.NoError(t, err)
	assert.True(t, snap.Shuffled)
	assert.Equal(t, 0, snap.Position)
	assert.ElementsMatch(t, []int64{1, 2, 3}, snap.Order)

	snap, err = svc.Navigate(ctx, id, NavResetOrder)
	require.NoError(t, err)
	assert.False(t, snap.Shuffled)
	assert.Equal(t, []int64{1, 2, 3}, snap.Order)

	_, err = svc.Navigate(ctx, id, Navigation("sideways"))
	assert.ErrorIs(t, err, ErrUnknownNavigation)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, []string{
		events.TypeSessionStarted,
		events.TypeDeckShuffled,
		events.TypeDeckOrderReset,
	}, emitter.types())
}

func TestSessionService_Submit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("grades and records streak", func(t *testing.T) {
		t.Parallel()
		svc, emitter := newSessions(t, testDeck())
		started, err := svc.Start(ctx)
		require.NoError(t, err)
		id := started.Snapshot.ID

		answered, err := svc.Submit(ctx, id, "peter")
		require.NoError(t, err)
		assert.True(t, answered.Verdict.Correct)
		assert.Equal(t, "Peter Parker", answered.Verdict.Question.Answer)
		assert.True(t, answered.Snapshot.Feedback.Visible)
		assert.Equal(t, 1, answered.Snapshot.Streak.Current)

		_, err = svc.Submit(ctx, id, "tony")
		assert.ErrorIs(t, err, session.ErrFeedbackPending)

		_, err = svc.DismissFeedback(ctx, id)
		require.NoError(t, err)

		answered, err = svc.Submit(ctx, id, "xq")
		require.NoError(t, err)
		assert.False(t, answered.Verdict.Correct)
		assert.Equal(t, 0, answered.Snapshot.Streak.Current)
		assert.Equal(t, 1, answered.Snapshot.Streak.Longest)

		assert.Equal(t, []string{
			events.TypeSessionStarted,
			events.TypeAnswerSubmitted,
			events.TypeAnswerSubmitted,
		}, emitter.types())
		var payload events.AnswerPayload
		require.NoError(t, emitter.events[1].UnmarshalPayload(&payload))
		assert.Equal(t, int64(1), payload.CharacterID)
		assert.Equal(t, "realName", payload.QuestionKind)
		assert.True(t, payload.Correct)
	})

	t.Run("blank guess", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSessions(t, testDeck())
		started, err := svc.Start(ctx)
		require.NoError(t, err)

		_, err = svc.Submit(ctx, started.Snapshot.ID, "   ")
		assert.ErrorIs(t, err, session.ErrEmptyGuess)
	})

	t.Run("feedback clears after delay", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSessions(t, testDeck(), WithFeedbackDelay(10*time.Millisecond))
		started, err := svc.Start(ctx)
		require.NoError(t, err)
		id := started.Snapshot.ID

		_, err = svc.Submit(ctx, id, "Peter Parker")
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			snap, err := svc.Snapshot(ctx, id)
			return err == nil && !snap.Feedback.Visible
		}, time.Second, 5*time.Millisecond)
	})
}

func TestSessionService_MarkMastered(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, emitter := newSessions(t, testDeck())
	started, err := svc.Start(ctx)
	require.NoError(t, err)
	id := started.Snapshot.ID

	mastered, err := svc.MarkMastered(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "Spider-Man", mastered.Character.Name)
	assert.Equal(t, []int64{2, 3}, mastered.Snapshot.Order)
	assert.Equal(t, 0, mastered.Snapshot.Position)
	require.Len(t, mastered.Snapshot.Mastered, 1)

	_, err = svc.MarkMastered(ctx, id, 99)
	assert.ErrorIs(t, err, session.ErrCharacterNotFound)

	for _, cid := range []int64{2, 3} {
		_, err = svc.MarkMastered(ctx, id, cid)
		require.NoError(t, err)
	}
	snap, err := svc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.StatusExhausted, snap.Status)

	_, err = svc.MarkMastered(ctx, id, 1)
	assert.ErrorIs(t, err, session.ErrNotActive)

	types := emitter.types()
	assert.Equal(t, events.TypeCharacterMastered, types[len(types)-1])
	var payload events.MasteredPayload
	require.NoError(t, emitter.events[len(types)-1].UnmarshalPayload(&payload))
	assert.Equal(t, 0, payload.Remaining)
}

func TestSessionService_End(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, emitter := newSessions(t, testDeck(), WithFeedbackDelay(time.Hour))
	started, err := svc.Start(ctx)
	require.NoError(t, err)
	id := started.Snapshot.ID

	_, err = svc.Submit(ctx, id, "Peter Parker")
	require.NoError(t, err)

	require.NoError(t, svc.End(ctx, id))
	_, err = svc.Snapshot(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, events.TypeSessionEnded, emitter.types()[len(emitter.types())-1])
}

func TestSessionService_EmitFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)
	emitter := &recordingEmitter{err: errors.New("event log down")}
	svc, err := NewSessionService(
		stubCatalog{deck: LoadedDeck{Characters: testDeck(), Source: catalog.SourceAPI}},
		log,
		WithEventEmitter(emitter),
	)
	require.NoError(t, err)

	_, err = svc.Start(context.Background())
	require.NoError(t, err)
	logger.AssertLogContains(t, buf, "failed to deliver session event")
}

func TestSessionService_ConcurrentSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSessions(t, testDeck())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started, err := svc.Start(ctx)
			if !assert.NoError(t, err) {
				return
			}
			id := started.Snapshot.ID
			for range 3 {
				_, err := svc.Navigate(ctx, id, NavAdvance)
				assert.NoError(t, err)
				_, _ = svc.Submit(ctx, id, "guess")
				_, _ = svc.DismissFeedback(ctx, id)
			}
			assert.NoError(t, svc.End(ctx, id))
		}()
	}
	wg.Wait()
}

// fakeClock is a settable clock safe for concurrent use.
type fakeClock struct {
	nanos atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.nanos.Store(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).UnixNano())
	return c
}

func (c *fakeClock) Now() time.Time {
	return time.Unix(0, c.nanos.Load()).UTC()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.nanos.Add(int64(d))
}

func TestSessionService_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ttl := time.Hour

	t.Run("abandoned sessions are dropped after the ttl", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		svc, emitter := newSessions(t, testDeck(),
			WithSessionTTL(ttl),
			WithClock(clock.Now),
			WithFeedbackDelay(time.Hour))

		var ids []uuid.UUID
		for range 50 {
			started, err := svc.Start(ctx)
			require.NoError(t, err)
			_, err = svc.Submit(ctx, started.Snapshot.ID, "Peter Parker")
			require.NoError(t, err)
			ids = append(ids, started.Snapshot.ID)
		}

		clock.Advance(ttl - time.Minute)
		assert.Zero(t, svc.Sweep(ctx))

		clock.Advance(2 * time.Minute)
		assert.Equal(t, len(ids), svc.Sweep(ctx))

		for _, id := range ids {
			_, err := svc.Snapshot(ctx, id)
			assert.ErrorIs(t, err, ErrSessionNotFound)
		}
		impl := svc.(*sessionServiceImpl)
		impl.mu.RLock()
		assert.Empty(t, impl.sessions)
		impl.mu.RUnlock()
		assert.Equal(t, events.TypeSessionExpired, emitter.types()[len(emitter.types())-1])
	})

	t.Run("activity keeps a session alive", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		svc, _ := newSessions(t, testDeck(), WithSessionTTL(ttl), WithClock(clock.Now))

		active, err := svc.Start(ctx)
		require.NoError(t, err)
		idle, err := svc.Start(ctx)
		require.NoError(t, err)

		clock.Advance(45 * time.Minute)
		_, err = svc.Navigate(ctx, active.Snapshot.ID, NavAdvance)
		require.NoError(t, err)

		clock.Advance(30 * time.Minute)
		assert.Equal(t, 1, svc.Sweep(ctx))

		_, err = svc.Snapshot(ctx, active.Snapshot.ID)
		assert.NoError(t, err)
		_, err = svc.Snapshot(ctx, idle.Snapshot.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("start sweeps expired sessions", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		svc, _ := newSessions(t, testDeck(), WithSessionTTL(ttl), WithClock(clock.Now))

		old, err := svc.Start(ctx)
		require.NoError(t, err)

		clock.Advance(ttl + time.Second)
		_, err = svc.Start(ctx)
		require.NoError(t, err)

		_, err = svc.Snapshot(ctx, old.Snapshot.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("zero ttl keeps sessions", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		svc, _ := newSessions(t, testDeck(), WithClock(clock.Now))

		started, err := svc.Start(ctx)
		require.NoError(t, err)

		clock.Advance(1000 * time.Hour)
		assert.Zero(t, svc.Sweep(ctx))
		_, err = svc.Snapshot(ctx, started.Snapshot.ID)
		assert.NoError(t, err)
	})
}

func TestRunSweeper_StopsWithContext(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	svc, _ := newSessions(t, testDeck(), WithSessionTTL(time.Hour), WithClock(clock.Now))
	started, err := svc.Start(context.Background())
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunSweeper(ctx, svc, time.Millisecond)
	}()

	assert.Eventually(t, func() bool {
		_, err := svc.Snapshot(context.Background(), started.Snapshot.ID)
		return errors.Is(err, ErrSessionNotFound)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
