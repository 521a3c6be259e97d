package store

import _ "embed"

// Default schema texts, one per engine. A schema file shipped alongside the
// data takes precedence; these are the fallback.
var (
	//go:embed schema/sqlite.sql
	sqliteSchema string

	//go:embed schema/postgres.sql
	postgresSchema string

	//go:embed schema/mysql.sql
	mysqlSchema string
)
