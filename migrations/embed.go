// Package migrations - схемы хранилищ для goose, по каталогу на диалект.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
