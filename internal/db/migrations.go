package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	name  string
	apply func(db *sql.DB) error
}

// migrations run in order after schema creation. Each one must be
// idempotent. Append new migrations at the end.
var migrations = []migration{
	// Databases created before items carried a map location only have the
	// free-text location_found column.
	{"add found_items.location_id", addColumn("found_items", "location_id", "TEXT")},
}

// Migrate ensures the schema exists and brings older databases up to date.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if err := m.apply(db); err != nil {
			return fmt.Errorf("running migration %d (%s): %w", i+1, m.name, err)
		}
	}

	return nil
}

func addColumn(table, column, decl string) func(*sql.DB) error {
	return func(db *sql.DB) error {
		exists, err := hasColumn(db, table, column)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		_, err = db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, decl))
		return err
	}
}

func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return false, fmt.Errorf("reading table info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scanning table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
