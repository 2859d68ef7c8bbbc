package database

import (
	"database/sql"
	"fmt"
)

// StarboardSettings are the per-guild starboard settings.
type StarboardSettings struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	Threshold int    `json:"threshold"`
	Emoji     string `json:"emoji"`
	Enabled   bool   `json:"enabled"`
}

// StarboardEntry tracks a message that has been posted to the starboard.
type StarboardEntry struct {
	GuildID            string `json:"guild_id"`
	MessageID          string `json:"message_id"`
	StarboardMessageID string `json:"starboard_message_id"`
	StarCount          int    `json:"star_count"`
}

// SetStarboardSettings stores starboard settings for a guild.
func (db *DB) SetStarboardSettings(s *StarboardSettings) error {
	query := `
	INSERT INTO starboard_settings (guild_id, channel_id, threshold, emoji, enabled)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(guild_id)
	DO UPDATE SET
		channel_id = excluded.channel_id,
		threshold = excluded.threshold,
		emoji = excluded.emoji,
		enabled = excluded.enabled
	`

	if _, err := db.conn.Exec(query, s.GuildID, s.ChannelID, s.Threshold, s.Emoji, s.Enabled); err != nil {
		return fmt.Errorf("failed to set starboard settings: %w", err)
	}
	return nil
}

// GetStarboardSettings returns starboard settings, or nil when the
// starboard has not been set up.
func (db *DB) GetStarboardSettings(guildID string) (*StarboardSettings, error) {
	query := `
	SELECT guild_id, channel_id, threshold, emoji, enabled
	FROM starboard_settings
	WHERE guild_id = ?
	`

	var s StarboardSettings
	err := db.conn.QueryRow(query, guildID).Scan(&s.GuildID, &s.ChannelID, &s.Threshold, &s.Emoji, &s.Enabled)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get starboard settings: %w", err)
	}

	return &s, nil
}

// UpsertStarboardEntry records or updates a starboard post for a message.
func (db *DB) UpsertStarboardEntry(e *StarboardEntry) error {
	query := `
	INSERT INTO starboard_entries (guild_id, message_id, starboard_message_id, star_count)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(guild_id, message_id)
	DO UPDATE SET
		starboard_message_id = excluded.starboard_message_id,
		star_count = excluded.star_count
	`

	if _, err := db.conn.Exec(query, e.GuildID, e.MessageID, e.StarboardMessageID, e.StarCount); err != nil {
		return fmt.Errorf("failed to upsert starboard entry: %w", err)
	}
	return nil
}

// GetStarboardEntry returns the starboard entry for a message, or nil.
func (db *DB) GetStarboardEntry(guildID, messageID string) (*StarboardEntry, error) {
	query := `
	SELECT guild_id, message_id, starboard_message_id, star_count
	FROM starboard_entries
	WHERE guild_id = ? AND message_id = ?
	`

	var e StarboardEntry
	err := db.conn.QueryRow(query, guildID, messageID).Scan(&e.GuildID, &e.MessageID, &e.StarboardMessageID, &e.StarCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get starboard entry: %w", err)
	}

	return &e, nil
}
