// Package session implements the flashcard session state machine: the deck
// of characters still being studied (in canonical and shuffled order), the
// position within it, the active question, answer feedback, the mastered set
// and answer streaks.
//
// A Session has a single logical owner and is not safe for concurrent use;
// callers that share sessions across goroutines must serialize access.
package session
