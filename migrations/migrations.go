// Package migrations embeds the PostgreSQL schema migrations.
package migrations

import "embed"

// FS holds every golang-migrate migration file.
//
//go:embed *.sql
var FS embed.FS
