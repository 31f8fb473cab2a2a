// Package service coordinates the quiz domain with its collaborators: the
// catalog provider, the trivia generator, the character cache and the
// session event log. HTTP handlers and the terminal client both sit on top
// of it.
package service
