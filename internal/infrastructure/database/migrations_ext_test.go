package database_test

import (
	// Blank import registers the embedded migration files with the
	// database package. It lives in the external test package to avoid
	// an import cycle (migrations imports database).
	_ "github.com/snijdersandreu/TVWIZ-IR-Controller/migrations"
)
