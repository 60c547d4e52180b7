// Package db persists franchise rate tables in sqlite or postgres.
package db

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

//go:embed migrations/*.sql
var migrations embed.FS

const sqliteDialect = "sqlite3"

// DefaultVersion is stored when a record carries no version
const DefaultVersion = "v1"

// OpenSQLite opens a SQLite database, sets pragmas and checks connectivity
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Store("open sqlite database", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, errors.Store("set sqlite pragmas", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Store("ping sqlite database", err)
	}
	return db, nil
}

// Migrate runs every pending embedded migration
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return errors.Store("set goose dialect", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return errors.Store("run migrations", err)
	}
	version, err := goose.GetDBVersion(db)
	if err == nil {
		logging.Debug("sqlite schema ready", zap.Int64("version", version))
	}
	return nil
}
