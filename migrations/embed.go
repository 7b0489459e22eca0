// Package migrations embeds SQL migration files for the server, tests and tooling.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
