// Package dashdb owns access to the dashboard's SQLite store: the ACTUAL
// table of instantaneous readings and the TOTAL table of daily cumulative
// counters. The dashboard only reads these tables; writes happen in the
// sample seeder.
package dashdb

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NotCoffee418/dbmigrator"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// DashDB wraps the SQLite handle for the meter database. Construct it with
// Open and pass it explicitly; there is no package-level instance.
type DashDB struct {
	db *sql.DB
}

// Open opens the SQLite database at path, creating it and its parent
// directory when missing, and applies pending migrations.
func Open(path string) (*DashDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	dbmigrator.SetDatabaseType(dbmigrator.SQLite)
	<-dbmigrator.MigrateUpCh(db, migrationFS, "migrations")

	return &DashDB{db: db}, nil
}

// DB exposes the underlying handle for callers that need raw access, such
// as tests.
func (d *DashDB) DB() *sql.DB {
	return d.db
}

// Close releases the database handle.
func (d *DashDB) Close() error {
	return d.db.Close()
}
