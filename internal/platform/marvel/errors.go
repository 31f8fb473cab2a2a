package marvel

import "errors"

// Error definitions for the marvel package.
var (
	// ErrInvalidConfig is returned when the client configuration is unusable.
	ErrInvalidConfig = errors.New("invalid marvel client configuration")

	// ErrRequestFailed is returned when the request cannot be sent or the
	// response cannot be read.
	ErrRequestFailed = errors.New("marvel request failed")

	// ErrUnexpectedStatus is returned for non-200 HTTP responses.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status from marvel API")

	// ErrAPIStatus is returned when the response envelope carries a non-200 code.
	ErrAPIStatus = errors.New("marvel API returned an error")

	// ErrDecode is returned when the response body is not a valid envelope.
	ErrDecode = errors.New("failed to decode marvel response")
)
