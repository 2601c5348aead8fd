// Package migrations embeds the goose SQL migrations for the molweight schema
// so the server binary and the integration tests apply the same files.
package migrations

import "embed"

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS

// TableName is the goose version table used by every migration runner.
const TableName = "schema_migrations"
