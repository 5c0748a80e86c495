package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every up migration and records the count in
// PRAGMA user_version. Migrations are written to be re-runnable.
func MigrateUp(db *sql.DB) error {
	applied, err := applyMigrations(db, ".up.sql", false)
	if err != nil {
		return err
	}
	return setSchemaVersion(db, applied)
}

func MigrateDown(db *sql.DB) error {
	if _, err := applyMigrations(db, ".down.sql", true); err != nil {
		return err
	}
	return setSchemaVersion(db, 0)
}

func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func applyMigrations(db *sql.DB, suffix string, reverse bool) (int, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return 0, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return 0, fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if strings.TrimSpace(string(sqlBytes)) == "" {
			continue
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return 0, fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return len(entries), nil
}

func setSchemaVersion(db *sql.DB, v int) error {
	// PRAGMA does not accept bound parameters.
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", v)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}
