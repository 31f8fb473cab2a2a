// Package catalog turns raw character records from a catalog provider into
// quiz-ready domain.Character values.
//
// It owns the static trivia tables (real name, powers, first appearance and
// display colour per character), the allow-list filter applied to provider
// records, image URL construction, and the built-in offline deck. The tables
// are decoded once from an embedded TOML document and are read-only
// afterwards, so a *Tables may be shared freely between goroutines.
package catalog
