// Package migrations embeds the goose migrations of the server's Postgres
// profile store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
