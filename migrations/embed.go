// Package migrations embeds the SQL schema files applied by cmd/migrate.
package migrations

import "embed"

// Files holds every V<n>__<name>.sql migration
//
//go:embed *.sql
var Files embed.FS
