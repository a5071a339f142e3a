// Package migrations registers the bun migrations for the remote mirror schema.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
