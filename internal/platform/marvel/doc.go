// Package marvel is a client for the Marvel Comics character catalog.
//
// It issues a single signed GET against the /characters endpoint and maps the
// response envelope to provider-neutral catalog.Record values. Filtering and
// enrichment are left to the catalog package.
package marvel
