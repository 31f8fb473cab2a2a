package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/api/shared"
	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/phrazzld/hero-flashcards/internal/service"
	"github.com/phrazzld/hero-flashcards/internal/service/auth"
)

// SessionHandler serves the session routes.
type SessionHandler struct {
	sessions service.SessionService
	tokens   auth.TokenService
	present  presenter
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(
	sessions service.SessionService,
	tokens auth.TokenService,
	tables *catalog.Tables,
	logger *slog.Logger,
) *SessionHandler {
	if sessions == nil || tokens == nil || tables == nil || logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("SessionHandler requires sessions, tokens, tables and logger")
	}
	return &SessionHandler{
		sessions: sessions,
		tokens:   tokens,
		present:  presenter{tables: tables},
		logger:   logger.With("component", "session_handler"),
	}
}

// Start handles POST /api/sessions. The returned token authenticates every
// later request for the session.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	started, err := h.sessions.Start(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := h.tokens.GenerateToken(r.Context(), started.Snapshot.ID)
	if err != nil {
		_ = h.sessions.End(r.Context(), started.Snapshot.ID)
		respondError(w, r, err)
		return
	}

	log.InfoContext(r.Context(), "session created",
		"session_id", started.Snapshot.ID,
		"source", started.Source)

	shared.RespondWithJSON(w, r, http.StatusCreated, StartSessionResponse{
		Token:   token,
		Source:  started.Source,
		Session: h.present.session(started.Snapshot),
	})
}

// Get handles GET /api/session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.sessions.Snapshot(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.present.session(snap))
}

// Navigate returns a handler applying nav to the caller's session.
func (h *SessionHandler) Navigate(nav service.Navigation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		snap, err := h.sessions.Navigate(r.Context(), id, nav)
		if err != nil {
			respondError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, h.present.session(snap))
	}
}

// SubmitAnswer handles POST /api/session/answers.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		respondError(w, r, err)
		return
	}

	answered, err := h.sessions.Submit(r.Context(), id, req.Guess)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Correct: answered.Verdict.Correct,
		Answer:  answered.Verdict.Question.Answer,
		Rule:    answered.Verdict.Rule,
		Score:   answered.Verdict.Score,
		Session: h.present.session(answered.Snapshot),
	})
}

// DismissFeedback handles POST /api/session/feedback/dismiss.
func (h *SessionHandler) DismissFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.sessions.DismissFeedback(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.present.session(snap))
}

// MarkMastered handles POST /api/session/mastered.
func (h *SessionHandler) MarkMastered(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req MasteredRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		respondError(w, r, err)
		return
	}

	mastered, err := h.sessions.MarkMastered(r.Context(), id, req.CharacterID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MasteredResponse{
		Mastered: h.present.character(mastered.Character),
		Session:  h.present.session(mastered.Snapshot),
	})
}

// End handles DELETE /api/session.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.End(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionID reads the ID placed by the auth middleware. A missing ID means
// the route was mounted without authentication.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := shared.GetSessionID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return uuid.Nil, false
	}
	return id, true
}
