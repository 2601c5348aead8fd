// Package postgres implements the element and compound stores on PostgreSQL
// through pgx's database/sql driver. Atomic weights and molecular weights are
// NUMERIC columns scanned into decimal.Decimal, and constraint violations are
// translated to store sentinels by MapError. The schema and the element seed
// live in the embedded migrations subpackage.
package postgres
