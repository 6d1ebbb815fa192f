// Package migrations embeds the goose migrations for the postgres favorites table.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
