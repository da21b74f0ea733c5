// Package migrations contains embedded SQL migrations for the ledger store.
package migrations

import "embed"

// FS contains the ledger journal and snapshot migrations.
//
//go:embed *.sql
var FS embed.FS
