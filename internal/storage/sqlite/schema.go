package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// schema contains the SQL statements to set up the base database
// schema. These run on every open and are idempotent.
// IMPORTANT: events must be created BEFORE attendees due to the
// foreign key constraint.
const schema = `
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    time TEXT NOT NULL,
    location TEXT,
    notes TEXT,
    expected_attendees INTEGER,
    attendees_count INTEGER NOT NULL DEFAULT 0,
    checked_in_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attendees (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL,
    name TEXT NOT NULL,
    checked_in INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_events_date_time ON events(date, time);
CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
CREATE INDEX IF NOT EXISTS idx_attendees_event_id ON attendees(event_id);
`

// Capabilities describes which later-revision attendee columns exist.
// Computed once at schema setup and consumed by repository methods, so
// a store whose additive migrations failed still operates with the
// guaranteed column set.
type Capabilities struct {
	HasEmail       bool
	HasPhone       bool
	HasCheckInTime bool
}

// attendeeMigrations lists the additive column migrations for the
// attendees table, in the order they were introduced. Additive only:
// columns are never dropped or renamed.
var attendeeMigrations = []struct {
	column string
	ddl    string
}{
	{"email", "ALTER TABLE attendees ADD COLUMN email TEXT"},
	{"phone", "ALTER TABLE attendees ADD COLUMN phone TEXT"},
	{"check_in_time", "ALTER TABLE attendees ADD COLUMN check_in_time TEXT"},
}

// ensureSchema creates the base tables and indexes, then applies any
// missing additive migrations. Base-schema failure is returned to the
// caller; a failed migration step is logged and skipped, since the
// repositories degrade gracefully around missing optional columns.
func ensureSchema(db *sql.DB) (Capabilities, error) {
	if _, err := db.Exec(schema); err != nil {
		return Capabilities{}, fmt.Errorf("failed to create base schema: %w", err)
	}

	cols, err := tableColumns(db, "attendees")
	if err != nil {
		return Capabilities{}, fmt.Errorf("failed to inspect attendees table: %w", err)
	}

	for _, m := range attendeeMigrations {
		if cols[m.column] {
			continue
		}
		if _, err := db.Exec(m.ddl); err != nil {
			slog.Warn("skipping additive migration", "column", m.column, "error", err)
			continue
		}
		cols[m.column] = true
	}

	return Capabilities{
		HasEmail:       cols["email"],
		HasPhone:       cols["phone"],
		HasCheckInTime: cols["check_in_time"],
	}, nil
}

// tableColumns returns the set of column names present on a table.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	// PRAGMA arguments cannot be parameterized; table names here are
	// compile-time constants.
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read table info: %w", err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table info: %w", err)
	}
	return cols, nil
}
