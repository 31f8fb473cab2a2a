// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts the session and grading services to JSON
// over HTTP and decides what a client may see: answers are only revealed
// through feedback.
package api
