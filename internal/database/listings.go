package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Listing is a marketplace post.
type Listing struct {
	ID          int       `json:"id"`
	GuildID     string    `json:"guild_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateListing stores a marketplace listing and returns its ID.
func (db *DB) CreateListing(guildID, userID, title, price, description string) (int, error) {
	result, err := db.conn.Exec(
		`INSERT INTO listings (guild_id, user_id, title, price, description) VALUES (?, ?, ?, ?, ?)`,
		guildID, userID, title, price, description,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create listing: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get listing id: %w", err)
	}

	return int(id), nil
}

// GetListing returns a listing by ID, or nil when it doesn't exist.
func (db *DB) GetListing(guildID string, id int) (*Listing, error) {
	query := `
	SELECT id, guild_id, user_id, title, price, description, created_at
	FROM listings
	WHERE guild_id = ? AND id = ?
	`

	var l Listing
	err := db.conn.QueryRow(query, guildID, id).Scan(&l.ID, &l.GuildID, &l.UserID, &l.Title, &l.Price, &l.Description, &l.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &l, nil
}

// GetListings returns a guild's listings, newest first.
func (db *DB) GetListings(guildID string, limit int) ([]Listing, error) {
	query := `
	SELECT id, guild_id, user_id, title, price, description, created_at
	FROM listings
	WHERE guild_id = ?
	ORDER BY created_at DESC
	LIMIT ?
	`

	rows, err := db.conn.Query(query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.GuildID, &l.UserID, &l.Title, &l.Price, &l.Description, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}

// CountUserListings returns how many listings a user has in a guild.
func (db *DB) CountUserListings(guildID, userID string) (int, error) {
	var count int
	err := db.conn.QueryRow(
		`SELECT COUNT(*) FROM listings WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

// DeleteListing removes a listing. It reports whether a row was deleted.
func (db *DB) DeleteListing(guildID string, id int) (bool, error) {
	result, err := db.conn.Exec(
		`DELETE FROM listings WHERE guild_id = ? AND id = ?`,
		guildID, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
