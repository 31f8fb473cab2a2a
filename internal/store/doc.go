// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the quiz services, which run identically with or without a database.
package store
