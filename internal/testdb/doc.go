// Package testdb provides utilities for database integration tests: a
// migrated connection from DATABASE_URL and per-test transactions that are
// always rolled back.
package testdb
