package database

import (
	"database/sql"
	"fmt"
	"math"
)

// LevelEntry is a user's XP record within a guild.
type LevelEntry struct {
	GuildID  string `json:"guild_id"`
	UserID   string `json:"user_id"`
	XP       int64  `json:"xp"`
	Level    int    `json:"level"`
	Messages int64  `json:"messages"`
}

// LevelSettings are the per-guild leveling knobs.
type LevelSettings struct {
	GuildID          string `json:"guild_id"`
	Enabled          bool   `json:"enabled"`
	CooldownSeconds  int    `json:"cooldown_seconds"`
	MinXP            int    `json:"min_xp"`
	MaxXP            int    `json:"max_xp"`
	AnnounceLevelUp  bool   `json:"announce_level_up"`
	LevelUpChannelID string `json:"level_up_channel_id"`
}

// LevelForXP returns the level reached at the given XP total.
// Curve: level = floor(sqrt(xp / 100)).
func LevelForXP(xp int64) int {
	if xp <= 0 {
		return 0
	}
	return int(math.Floor(math.Sqrt(float64(xp) / 100)))
}

// XPForLevel returns the XP required to reach the given level.
func XPForLevel(level int) int64 {
	return int64(level) * int64(level) * 100
}

// AddXP adds XP to a user and returns the updated entry along with
// whether the addition crossed a level boundary.
func (db *DB) AddXP(guildID, userID string, amount int) (*LevelEntry, bool, error) {
	entry, err := db.GetLevelEntry(guildID, userID)
	if err != nil {
		return nil, false, err
	}

	oldLevel := 0
	var newXP int64 = int64(amount)
	var messages int64 = 1
	if entry != nil {
		oldLevel = entry.Level
		newXP = entry.XP + int64(amount)
		messages = entry.Messages + 1
	}

	newLevel := LevelForXP(newXP)

	query := `
	INSERT INTO levels (guild_id, user_id, xp, level, messages)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(guild_id, user_id)
	DO UPDATE SET xp = excluded.xp, level = excluded.level, messages = excluded.messages
	`

	if _, err := db.conn.Exec(query, guildID, userID, newXP, newLevel, messages); err != nil {
		return nil, false, fmt.Errorf("failed to update xp: %w", err)
	}

	updated := &LevelEntry{
		GuildID:  guildID,
		UserID:   userID,
		XP:       newXP,
		Level:    newLevel,
		Messages: messages,
	}

	return updated, newLevel > oldLevel, nil
}

// SetLevel overwrites a user's level, resetting XP to the level floor.
func (db *DB) SetLevel(guildID, userID string, level int) error {
	query := `
	INSERT INTO levels (guild_id, user_id, xp, level, messages)
	VALUES (?, ?, ?, ?, 0)
	ON CONFLICT(guild_id, user_id)
	DO UPDATE SET xp = excluded.xp, level = excluded.level
	`

	if _, err := db.conn.Exec(query, guildID, userID, XPForLevel(level), level); err != nil {
		return fmt.Errorf("failed to set level: %w", err)
	}
	return nil
}

// GetLevelEntry returns a user's level record, or nil if they have none.
func (db *DB) GetLevelEntry(guildID, userID string) (*LevelEntry, error) {
	query := `
	SELECT guild_id, user_id, xp, level, messages
	FROM levels
	WHERE guild_id = ? AND user_id = ?
	`

	var e LevelEntry
	err := db.conn.QueryRow(query, guildID, userID).Scan(&e.GuildID, &e.UserID, &e.XP, &e.Level, &e.Messages)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get level entry: %w", err)
	}

	return &e, nil
}

// GetLeaderboard returns the top entries for a guild ordered by XP.
func (db *DB) GetLeaderboard(guildID string, limit int) ([]LevelEntry, error) {
	query := `
	SELECT guild_id, user_id, xp, level, messages
	FROM levels
	WHERE guild_id = ?
	ORDER BY xp DESC
	LIMIT ?
	`

	rows, err := db.conn.Query(query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LevelEntry
	for rows.Next() {
		var e LevelEntry
		if err := rows.Scan(&e.GuildID, &e.UserID, &e.XP, &e.Level, &e.Messages); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}

	return entries, nil
}

// GetLevelRank returns a user's 1-based position on the guild leaderboard.
func (db *DB) GetLevelRank(guildID, userID string) (int, error) {
	query := `
	SELECT COUNT(*) + 1
	FROM levels
	WHERE guild_id = ? AND xp > (SELECT xp FROM levels WHERE guild_id = ? AND user_id = ?)
	`

	var rank int
	if err := db.conn.QueryRow(query, guildID, guildID, userID).Scan(&rank); err != nil {
		return 0, fmt.Errorf("failed to get rank: %w", err)
	}
	return rank, nil
}

// GetLevelSettings returns leveling settings for a guild, with defaults
// when none have been stored.
func (db *DB) GetLevelSettings(guildID string) (*LevelSettings, error) {
	query := `
	SELECT guild_id, enabled, cooldown_seconds, min_xp, max_xp, announce_level_up, level_up_channel_id
	FROM level_settings
	WHERE guild_id = ?
	`

	var s LevelSettings
	err := db.conn.QueryRow(query, guildID).Scan(
		&s.GuildID, &s.Enabled, &s.CooldownSeconds, &s.MinXP, &s.MaxXP, &s.AnnounceLevelUp, &s.LevelUpChannelID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return &LevelSettings{
				GuildID:         guildID,
				Enabled:         true,
				CooldownSeconds: 60,
				MinXP:           15,
				MaxXP:           25,
				AnnounceLevelUp: true,
			}, nil
		}
		return nil, fmt.Errorf("failed to get level settings: %w", err)
	}

	return &s, nil
}

// SetLevelSettings stores leveling settings for a guild.
func (db *DB) SetLevelSettings(s *LevelSettings) error {
	query := `
	INSERT INTO level_settings (guild_id, enabled, cooldown_seconds, min_xp, max_xp, announce_level_up, level_up_channel_id)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(guild_id)
	DO UPDATE SET
		enabled = excluded.enabled,
		cooldown_seconds = excluded.cooldown_seconds,
		min_xp = excluded.min_xp,
		max_xp = excluded.max_xp,
		announce_level_up = excluded.announce_level_up,
		level_up_channel_id = excluded.level_up_channel_id
	`

	if _, err := db.conn.Exec(query, s.GuildID, s.Enabled, s.CooldownSeconds, s.MinXP, s.MaxXP, s.AnnounceLevelUp, s.LevelUpChannelID); err != nil {
		return fmt.Errorf("failed to set level settings: %w", err)
	}
	return nil
}

// SetRoleReward assigns a role reward to a level.
func (db *DB) SetRoleReward(guildID string, level int, roleID string) error {
	query := `
	INSERT INTO level_role_rewards (guild_id, level, role_id)
	VALUES (?, ?, ?)
	ON CONFLICT(guild_id, level)
	DO UPDATE SET role_id = excluded.role_id
	`

	if _, err := db.conn.Exec(query, guildID, level, roleID); err != nil {
		return fmt.Errorf("failed to set role reward: %w", err)
	}
	return nil
}

// GetRoleRewards returns level → role ID rewards for a guild.
func (db *DB) GetRoleRewards(guildID string) (map[int]string, error) {
	rows, err := db.conn.Query(
		`SELECT level, role_id FROM level_role_rewards WHERE guild_id = ?`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query role rewards: %w", err)
	}
	defer rows.Close()

	rewards := make(map[int]string)
	for rows.Next() {
		var level int
		var roleID string
		if err := rows.Scan(&level, &roleID); err != nil {
			return nil, fmt.Errorf("failed to scan role reward: %w", err)
		}
		rewards[level] = roleID
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rewards: %w", err)
	}

	return rewards, nil
}
