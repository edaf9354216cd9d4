package db

import "database/sql"

// MigrateUp creates the schema. Every statement is idempotent so the
// migration can run on every boot.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL DEFAULT '',
    last_name  TEXT NOT NULL DEFAULT ''
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS stories (
    id             TEXT PRIMARY KEY,
    author_id      TEXT NOT NULL REFERENCES users(id),
    title          TEXT NOT NULL,
    content        TEXT NOT NULL DEFAULT '',
    summary        TEXT NOT NULL DEFAULT '',
    borough        TEXT NOT NULL DEFAULT '',
    thumbnail      TEXT NOT NULL DEFAULT '',
    is_published   BOOLEAN NOT NULL DEFAULT FALSE,
    is_radar       BOOLEAN NOT NULL DEFAULT FALSE,
    is_recommended BOOLEAN NOT NULL DEFAULT FALSE,
    is_trashed     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS categories (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT ''
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS story_categories (
    story_id    TEXT NOT NULL REFERENCES stories(id),
    category_id TEXT NOT NULL REFERENCES categories(id),
    PRIMARY KEY (story_id, category_id)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS saves (
    story_id   TEXT NOT NULL REFERENCES stories(id),
    user_id    TEXT NOT NULL REFERENCES users(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (story_id, user_id)
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS subscribers (
    id         TEXT PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    phone      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// at most one story on the radar, enforced by the storage layer
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_stories_radar ON stories (is_radar) WHERE is_radar`,
		// list views order by created_at DESC
		`CREATE INDEX IF NOT EXISTS idx_stories_created_at ON stories (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_stories_published ON stories (is_published) WHERE is_published = TRUE`,
		`CREATE INDEX IF NOT EXISTS idx_stories_borough ON stories (borough)`,
		`CREATE INDEX IF NOT EXISTS idx_story_categories_category ON story_categories (category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_saves_user ON saves (user_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE title search. Errors are ignored: the
	// extension may already exist or the role may lack the privilege, and
	// the search works without the index.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_stories_title_gin ON stories USING gin(title gin_trgm_ops)`)

	return nil
}

// MigrateDown drops the schema in dependency order. This deletes all data;
// it exists for test environments only.
func MigrateDown(db *sql.DB) error {
	drops := []string{
		`DROP TABLE IF EXISTS saves`,
		`DROP TABLE IF EXISTS story_categories`,
		`DROP TABLE IF EXISTS subscribers`,
		`DROP TABLE IF EXISTS stories`,
		`DROP TABLE IF EXISTS categories`,
		`DROP TABLE IF EXISTS users`,
	}
	for _, stmt := range drops {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
