package catalog

import "errors"

// ErrInvalidTables indicates that a trivia document could not be decoded or
// failed validation.
var ErrInvalidTables = errors.New("invalid trivia tables")
