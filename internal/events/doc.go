// Package events provides types and interfaces for an event-driven architecture.
//
// Quiz sessions publish what happens to them (answers, mastery, shuffles)
// as SessionEvent values. Services emit events without knowing which
// handlers will process them; the server wires a handler that appends them
// to the session event log when a database is configured.
//
// The primary components are:
// - SessionEvent: Something that happened in one quiz session
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
