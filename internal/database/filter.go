package database

import "fmt"

// Filter term kinds.
const (
	FilterBlacklist = "blacklist"
	FilterWhitelist = "whitelist"
)

// AddFilterTerm adds a term to a guild's blacklist or whitelist.
func (db *DB) AddFilterTerm(guildID, term, kind string) error {
	if kind != FilterBlacklist && kind != FilterWhitelist {
		return fmt.Errorf("unknown filter kind %q", kind)
	}

	query := `
	INSERT INTO filter_terms (guild_id, term, kind)
	VALUES (?, ?, ?)
	ON CONFLICT(guild_id, term, kind) DO NOTHING
	`

	if _, err := db.conn.Exec(query, guildID, term, kind); err != nil {
		return fmt.Errorf("failed to add filter term: %w", err)
	}
	return nil
}

// RemoveFilterTerm removes a term. It reports whether a row was removed.
func (db *DB) RemoveFilterTerm(guildID, term, kind string) (bool, error) {
	result, err := db.conn.Exec(
		`DELETE FROM filter_terms WHERE guild_id = ? AND term = ? AND kind = ?`,
		guildID, term, kind,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove filter term: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetFilterTerms returns all terms of the given kind for a guild.
func (db *DB) GetFilterTerms(guildID, kind string) ([]string, error) {
	rows, err := db.conn.Query(
		`SELECT term FROM filter_terms WHERE guild_id = ? AND kind = ? ORDER BY term`,
		guildID, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query filter terms: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("failed to scan filter term: %w", err)
		}
		terms = append(terms, term)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating filter terms: %w", err)
	}

	return terms, nil
}
