// Package migrations embeds the SQL schema for the postgres campaign store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version the binary expects.
const Version = 1
