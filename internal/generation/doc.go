// Package generation defines the boundary to external AI/LLM services that
// generate quiz trivia. It lets the catalog layer fill in real names, powers
// and first appearances for characters missing from the static tables
// without coupling to a specific provider (Gemini).
package generation
