// Package domain contains the core quiz entities: the comic characters being
// studied and the questions derived from them. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
