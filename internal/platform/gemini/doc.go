// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API to produce trivia for characters missing from
// the static tables.
//
// This package is an infrastructure adapter: it renders a prompt from an
// embedded template, asks the model for a JSON object, and validates the
// answer before handing it back as domain.Trivia. Transient API errors are
// retried with exponential backoff and jitter; malformed or blocked responses
// fail immediately.
package gemini
