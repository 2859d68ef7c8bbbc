package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQL database connection
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection and initializes tables
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn}

	// Initialize tables
	if err := db.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initTables creates the necessary database tables
func (db *DB) initTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS warnings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_warnings_guild_user ON warnings(guild_id, user_id);

	CREATE TABLE IF NOT EXISTS temp_bans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(guild_id, user_id)
	);
	CREATE INDEX IF NOT EXISTS idx_temp_bans_expires ON temp_bans(expires_at);

	CREATE TABLE IF NOT EXISTS levels (
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		xp INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 0,
		messages INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (guild_id, user_id)
	);
	CREATE INDEX IF NOT EXISTS idx_levels_guild_xp ON levels(guild_id, xp);

	CREATE TABLE IF NOT EXISTS level_settings (
		guild_id TEXT PRIMARY KEY,
		enabled INTEGER NOT NULL DEFAULT 1,
		cooldown_seconds INTEGER NOT NULL DEFAULT 60,
		min_xp INTEGER NOT NULL DEFAULT 15,
		max_xp INTEGER NOT NULL DEFAULT 25,
		announce_level_up INTEGER NOT NULL DEFAULT 1,
		level_up_channel_id TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS level_role_rewards (
		guild_id TEXT NOT NULL,
		level INTEGER NOT NULL,
		role_id TEXT NOT NULL,
		PRIMARY KEY (guild_id, level)
	);

	CREATE TABLE IF NOT EXISTS ticket_settings (
		guild_id TEXT PRIMARY KEY,
		panel_channel_id TEXT NOT NULL,
		panel_message_id TEXT NOT NULL DEFAULT '',
		transcript_channel_id TEXT NOT NULL,
		category_id TEXT NOT NULL,
		ticket_types TEXT NOT NULL,
		moderator_roles TEXT NOT NULL,
		panel_title TEXT NOT NULL,
		panel_description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		channel_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		ticket_type TEXT NOT NULL,
		open INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		closed_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_tickets_guild_open ON tickets(guild_id, open);

	CREATE TABLE IF NOT EXISTS listings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		price TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_listings_guild ON listings(guild_id);

	CREATE TABLE IF NOT EXISTS starboard_settings (
		guild_id TEXT PRIMARY KEY,
		channel_id TEXT NOT NULL,
		threshold INTEGER NOT NULL DEFAULT 3,
		emoji TEXT NOT NULL DEFAULT '⭐',
		enabled INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS starboard_entries (
		guild_id TEXT NOT NULL,
		message_id TEXT NOT NULL,
		starboard_message_id TEXT NOT NULL,
		star_count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (guild_id, message_id)
	);

	CREATE TABLE IF NOT EXISTS filter_terms (
		guild_id TEXT NOT NULL,
		term TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('blacklist', 'whitelist')),
		PRIMARY KEY (guild_id, term, kind)
	);
	`

	_, err := db.conn.Exec(query)
	return err
}
