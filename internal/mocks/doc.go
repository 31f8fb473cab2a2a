// Package mocks provides hand-written test doubles for the service
// interfaces shared across packages.
package mocks
