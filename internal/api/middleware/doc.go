// Package middleware provides HTTP middleware for request tracing and
// session-token authentication.
package middleware
