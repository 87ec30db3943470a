// Package migrations contiene el esquema PostgreSQL, embebido en el binario.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
