// Package migrations embeds the SQL schema for the SQLite save backend.
package migrations

import "embed"

// FS holds the migration files, applied in name order
//
//go:embed *.sql
var FS embed.FS
