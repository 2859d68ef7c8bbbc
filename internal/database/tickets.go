package database

import (
	"database/sql"
	"fmt"
	"time"
)

// TicketSettings are the per-guild ticket system settings.
type TicketSettings struct {
	GuildID             string `json:"guild_id"`
	PanelChannelID      string `json:"panel_channel_id"`
	PanelMessageID      string `json:"panel_message_id"`
	TranscriptChannelID string `json:"transcript_channel_id"`
	CategoryID          string `json:"category_id"`
	TicketTypes         string `json:"ticket_types"`    // comma-separated
	ModeratorRoles      string `json:"moderator_roles"` // comma-separated role IDs
	PanelTitle          string `json:"panel_title"`
	PanelDescription    string `json:"panel_description"`
}

// Ticket is an open or closed support ticket.
type Ticket struct {
	ID         int        `json:"id"`
	GuildID    string     `json:"guild_id"`
	ChannelID  string     `json:"channel_id"`
	UserID     string     `json:"user_id"`
	TicketType string     `json:"ticket_type"`
	Open       bool       `json:"open"`
	CreatedAt  time.Time  `json:"created_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
}

// SetTicketSettings stores ticket settings for a guild.
func (db *DB) SetTicketSettings(s *TicketSettings) error {
	query := `
	INSERT INTO ticket_settings (guild_id, panel_channel_id, panel_message_id, transcript_channel_id, category_id, ticket_types, moderator_roles, panel_title, panel_description)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(guild_id)
	DO UPDATE SET
		panel_channel_id = excluded.panel_channel_id,
		panel_message_id = excluded.panel_message_id,
		transcript_channel_id = excluded.transcript_channel_id,
		category_id = excluded.category_id,
		ticket_types = excluded.ticket_types,
		moderator_roles = excluded.moderator_roles,
		panel_title = excluded.panel_title,
		panel_description = excluded.panel_description
	`

	if _, err := db.conn.Exec(query,
		s.GuildID, s.PanelChannelID, s.PanelMessageID, s.TranscriptChannelID, s.CategoryID,
		s.TicketTypes, s.ModeratorRoles, s.PanelTitle, s.PanelDescription,
	); err != nil {
		return fmt.Errorf("failed to set ticket settings: %w", err)
	}
	return nil
}

// GetTicketSettings returns ticket settings for a guild, or nil if the
// ticket system has not been set up.
func (db *DB) GetTicketSettings(guildID string) (*TicketSettings, error) {
	query := `
	SELECT guild_id, panel_channel_id, panel_message_id, transcript_channel_id, category_id, ticket_types, moderator_roles, panel_title, panel_description
	FROM ticket_settings
	WHERE guild_id = ?
	`

	var s TicketSettings
	err := db.conn.QueryRow(query, guildID).Scan(
		&s.GuildID, &s.PanelChannelID, &s.PanelMessageID, &s.TranscriptChannelID, &s.CategoryID,
		&s.TicketTypes, &s.ModeratorRoles, &s.PanelTitle, &s.PanelDescription,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket settings: %w", err)
	}

	return &s, nil
}

// CreateTicket records a newly opened ticket and returns its ID.
func (db *DB) CreateTicket(guildID, channelID, userID, ticketType string) (int, error) {
	result, err := db.conn.Exec(
		`INSERT INTO tickets (guild_id, channel_id, user_id, ticket_type) VALUES (?, ?, ?, ?)`,
		guildID, channelID, userID, ticketType,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticket: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get ticket id: %w", err)
	}

	return int(id), nil
}

// GetTicketByChannel returns the open ticket bound to a channel, or nil.
func (db *DB) GetTicketByChannel(channelID string) (*Ticket, error) {
	query := `
	SELECT id, guild_id, channel_id, user_id, ticket_type, open, created_at, closed_at
	FROM tickets
	WHERE channel_id = ? AND open = 1
	`

	var t Ticket
	var closedAt sql.NullTime
	err := db.conn.QueryRow(query, channelID).Scan(
		&t.ID, &t.GuildID, &t.ChannelID, &t.UserID, &t.TicketType, &t.Open, &t.CreatedAt, &closedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if closedAt.Valid {
		t.ClosedAt = &closedAt.Time
	}

	return &t, nil
}

// CountOpenTickets returns the number of open tickets a user has in a guild.
func (db *DB) CountOpenTickets(guildID, userID string) (int, error) {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM tickets WHERE guild_id = ? AND user_id = ? AND open = 1`,
		guildID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open tickets: %w", err)
	}
	return count, nil
}

// CloseTicket marks a ticket closed.
func (db *DB) CloseTicket(id int) error {
	if _, err := db.conn.Exec(
		`UPDATE tickets SET open = 0, closed_at = CURRENT_TIMESTAMP WHERE id = ?`,
		id,
	); err != nil {
		return fmt.Errorf("failed to close ticket: %w", err)
	}
	return nil
}

// GetStaleOpenTickets returns open tickets created before the cutoff.
func (db *DB) GetStaleOpenTickets(cutoff time.Time) ([]Ticket, error) {
	query := `
	SELECT id, guild_id, channel_id, user_id, ticket_type, open, created_at, closed_at
	FROM tickets
	WHERE open = 1 AND created_at < ?
	`

	rows, err := db.conn.Query(query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale tickets: %w", err)
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		var t Ticket
		var closedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.GuildID, &t.ChannelID, &t.UserID, &t.TicketType, &t.Open, &t.CreatedAt, &closedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		if closedAt.Valid {
			t.ClosedAt = &closedAt.Time
		}
		tickets = append(tickets, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}
