package migrations

import "embed"

// FS содержит встроенные миграции SQLite-хранилища слотов.
//
//go:embed *.sql
var FS embed.FS
