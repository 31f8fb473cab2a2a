// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It also owns the schema, embedded as goose
// migrations so the server binary can migrate itself.
package postgres
