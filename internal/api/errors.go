package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/hero-flashcards/internal/api/shared"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/domain/session"
	"github.com/phrazzld/hero-flashcards/internal/service"
	"github.com/phrazzld/hero-flashcards/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, session.ErrCharacterNotFound):
		return http.StatusNotFound

	case errors.Is(err, session.ErrFeedbackPending),
		errors.Is(err, session.ErrNotActive),
		errors.Is(err, session.ErrAlreadyLoaded):
		return http.StatusConflict

	case errors.Is(err, session.ErrEmptyGuess),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, session.ErrCharacterNotFound):
		return "Character not in deck"

	case errors.Is(err, session.ErrFeedbackPending):
		return "Feedback for the previous answer is still shown"
	case errors.Is(err, session.ErrNotActive):
		return "Session has no active character"
	case errors.Is(err, session.ErrAlreadyLoaded):
		return "Session already loaded"

	case errors.Is(err, session.ErrEmptyGuess):
		return "Guess cannot be empty"
	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError describes the first failed field without exposing
// Go type names.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt", "gte":
		return "must be positive"
	default:
		return "validation failed"
	}
}
