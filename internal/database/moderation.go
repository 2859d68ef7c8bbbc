package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Warning is a recorded moderation warning against a user.
type Warning struct {
	ID          int       `json:"id"`
	GuildID     string    `json:"guild_id"`
	UserID      string    `json:"user_id"`
	ModeratorID string    `json:"moderator_id"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// TempBan is a ban with a scheduled expiry.
type TempBan struct {
	ID        int       `json:"id"`
	GuildID   string    `json:"guild_id"`
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	ExpiresAt int64     `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AddWarning records a warning and returns the user's total warning count.
func (db *DB) AddWarning(guildID, userID, moderatorID, reason string) (int, error) {
	query := `INSERT INTO warnings (guild_id, user_id, moderator_id, reason) VALUES (?, ?, ?, ?)`

	if _, err := db.conn.Exec(query, guildID, userID, moderatorID, reason); err != nil {
		return 0, fmt.Errorf("failed to add warning: %w", err)
	}

	return db.CountWarnings(guildID, userID)
}

// GetWarnings returns all warnings for a user, newest first.
func (db *DB) GetWarnings(guildID, userID string) ([]Warning, error) {
	query := `
	SELECT id, guild_id, user_id, moderator_id, reason, created_at
	FROM warnings
	WHERE guild_id = ? AND user_id = ?
	ORDER BY created_at DESC
	`

	rows, err := db.conn.Query(query, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query warnings: %w", err)
	}
	defer rows.Close()

	var warnings []Warning
	for rows.Next() {
		var w Warning
		if err := rows.Scan(&w.ID, &w.GuildID, &w.UserID, &w.ModeratorID, &w.Reason, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		warnings = append(warnings, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warnings: %w", err)
	}

	return warnings, nil
}

// CountWarnings returns the number of warnings for a user.
func (db *DB) CountWarnings(guildID, userID string) (int, error) {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM warnings WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count warnings: %w", err)
	}
	return count, nil
}

// ClearWarnings removes all warnings for a user and returns how many were removed.
func (db *DB) ClearWarnings(guildID, userID string) (int, error) {
	result, err := db.conn.Exec(
		`DELETE FROM warnings WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear warnings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}

// AddTempBan records a ban expiring at the given unix timestamp,
// replacing any existing entry for the user.
func (db *DB) AddTempBan(guildID, userID, reason string, expiresAt int64) error {
	query := `
	INSERT INTO temp_bans (guild_id, user_id, reason, expires_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(guild_id, user_id)
	DO UPDATE SET reason = excluded.reason, expires_at = excluded.expires_at
	`

	if _, err := db.conn.Exec(query, guildID, userID, reason, expiresAt); err != nil {
		return fmt.Errorf("failed to add temp ban: %w", err)
	}
	return nil
}

// GetExpiredTempBans returns temp bans whose expiry is at or before now.
func (db *DB) GetExpiredTempBans(now int64) ([]TempBan, error) {
	query := `
	SELECT id, guild_id, user_id, reason, expires_at, created_at
	FROM temp_bans
	WHERE expires_at <= ?
	`

	rows, err := db.conn.Query(query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query temp bans: %w", err)
	}
	defer rows.Close()

	var bans []TempBan
	for rows.Next() {
		var b TempBan
		if err := rows.Scan(&b.ID, &b.GuildID, &b.UserID, &b.Reason, &b.ExpiresAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan temp ban: %w", err)
		}
		bans = append(bans, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating temp bans: %w", err)
	}

	return bans, nil
}

// GetTempBan returns the temp ban for a user, or nil if none exists.
func (db *DB) GetTempBan(guildID, userID string) (*TempBan, error) {
	query := `
	SELECT id, guild_id, user_id, reason, expires_at, created_at
	FROM temp_bans
	WHERE guild_id = ? AND user_id = ?
	`

	var b TempBan
	err := db.conn.QueryRow(query, guildID, userID).Scan(&b.ID, &b.GuildID, &b.UserID, &b.Reason, &b.ExpiresAt, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get temp ban: %w", err)
	}

	return &b, nil
}

// RemoveTempBan deletes a temp ban entry.
func (db *DB) RemoveTempBan(guildID, userID string) error {
	if _, err := db.conn.Exec(
		`DELETE FROM temp_bans WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	); err != nil {
		return fmt.Errorf("failed to remove temp ban: %w", err)
	}
	return nil
}
