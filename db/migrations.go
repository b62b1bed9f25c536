// Package db embeds the SQL migrations applied by cmd/migrate.
package db

import "embed"

// Migrations holds every *.sql file in this directory. Files are applied in
// lexical order, so names start with YYYY-MM-DD-NNN-.
//
//go:embed *.sql
var Migrations embed.FS
