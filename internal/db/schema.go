package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    uid           TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id             TEXT PRIMARY KEY,
    reference_code TEXT NOT NULL UNIQUE,
    category       TEXT NOT NULL CHECK (category IN ('Lost', 'Found')),
    title          TEXT NOT NULL,
    description    TEXT NOT NULL,
    location       TEXT NOT NULL,
    contact        TEXT NOT NULL,
    date           TEXT NOT NULL,
    status         TEXT NOT NULL DEFAULT 'Active' CHECK (status IN ('Active', 'Claimed', 'Resolved')),
    owner_uid      TEXT NOT NULL,
    owner_email    TEXT NOT NULL,
    photo          BLOB,
    photo_mime     TEXT,
    created_at     INTEGER NOT NULL,
    updated_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_category_status ON items(category, status);

CREATE TABLE IF NOT EXISTS counters (
    category TEXT PRIMARY KEY,
    seq      INTEGER NOT NULL CHECK (seq >= 0)
);

CREATE TABLE IF NOT EXISTS status_events (
    id          INTEGER PRIMARY KEY,
    item_id     TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    from_status TEXT NOT NULL,
    to_status   TEXT NOT NULL,
    changed_by  TEXT NOT NULL,
    changed_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_status_events_item ON status_events(item_id);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
