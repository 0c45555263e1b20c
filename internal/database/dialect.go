package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect defines the database-specific operations the store needs. The
// embedded store is SQLite; Postgres and MySQL are selectable through
// configuration for installations that already run a server.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN returns the data source name for the connection.
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (? to $1 for
	// postgres).
	RewriteQuery(query string) string

	// ConfigureConnection applies database-specific connection settings.
	ConfigureConnection(db *sql.DB) error

	// CreateMigrationsTableQuery returns the SQL creating the migrations
	// tracking table.
	CreateMigrationsTableQuery() string
}

// DialectConfig holds the connection parameters a dialect may need.
type DialectConfig struct {
	// Path is the database file, for SQLite.
	Path string

	// URL is the server DSN, for Postgres and MySQL.
	URL string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
