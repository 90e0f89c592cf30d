// Package migrations ships the comment schema as numbered up/down SQL files.
package migrations

import "embed"

// FS holds the *.sql files applied in name order by the store.
//
//go:embed *.sql
var FS embed.FS
