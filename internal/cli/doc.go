// Package cli implements the quiz terminal client: a cobra command tree that
// plays sessions against the in-process session service.
package cli
