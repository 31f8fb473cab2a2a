// Package auth issues and validates the bearer tokens that bind an HTTP
// client to one quiz session.
package auth
