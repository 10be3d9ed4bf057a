// Package migrations embeds the SurrealDB schema.
package migrations

import "embed"

// FS holds the .surql files applied by database.ApplyMigrations.
//
//go:embed *.surql
var FS embed.FS
