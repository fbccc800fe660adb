// Package migrations embeds the SQL schema migrations for the database-backed stores.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
