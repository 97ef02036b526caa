// Package migrations embeds the journal schema files into the binary
// and registers them with the database package.
package migrations

import (
	"embed"

	"github.com/snijdersandreu/TVWIZ-IR-Controller/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
