package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/hero-flashcards/internal/api/shared"
	"github.com/phrazzld/hero-flashcards/internal/domain/session"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
)

// GradeHandler serves stateless grading.
type GradeHandler struct {
	grader session.Grader
	logger *slog.Logger
}

// NewGradeHandler creates a GradeHandler.
func NewGradeHandler(grader session.Grader, logger *slog.Logger) *GradeHandler {
	if grader == nil || logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("grader and logger cannot be nil for GradeHandler")
	}
	return &GradeHandler{
		grader: grader,
		logger: logger.With("component", "grade_handler"),
	}
}

// Grade handles POST /api/grade.
func (h *GradeHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		respondError(w, r, err)
		return
	}

	result := h.grader.Explain(req.Guess, req.Answer)
	logger.FromContextOrDefault(r.Context(), h.logger).DebugContext(r.Context(), "graded guess",
		"correct", result.Correct,
		"rule", result.Rule)
	shared.RespondWithJSON(w, r, http.StatusOK, GradeResponse{
		Correct: result.Correct,
		Rule:    result.Rule,
		Score:   result.Score,
	})
}

// respondError maps err to a status and safe message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
