// Package ciutil centralises environment detection for tests and tooling:
// whether the process runs under CI and which database URL tests should use.
package ciutil
