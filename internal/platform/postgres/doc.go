// Package postgres provides the PostgreSQL implementation of the report store
// defined in internal/store, together with the embedded schema migrations
// that create its table. Queries go through database/sql with the pgx driver.
package postgres
