package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWarnings(t *testing.T) {
	db := newTestDB(t)

	count, err := db.AddWarning("g1", "u1", "mod1", "spam")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = db.AddWarning("g1", "u1", "mod1", "more spam")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Different guild does not bleed over
	count, err = db.CountWarnings("g2", "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	warnings, err := db.GetWarnings("g1", "u1")
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Equal(t, "mod1", warnings[0].ModeratorID)

	removed, err := db.ClearWarnings("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
}

func TestTempBans(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().Unix()

	require.NoError(t, db.AddTempBan("g1", "u1", "raiding", now-10))
	require.NoError(t, db.AddTempBan("g1", "u2", "raiding", now+3600))

	expired, err := db.GetExpiredTempBans(now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "u1", expired[0].UserID)

	// Re-banning the same user replaces the expiry
	require.NoError(t, db.AddTempBan("g1", "u1", "still raiding", now+7200))
	expired, err = db.GetExpiredTempBans(now)
	require.NoError(t, err)
	assert.Empty(t, expired)

	ban, err := db.GetTempBan("g1", "u1")
	require.NoError(t, err)
	require.NotNil(t, ban)
	assert.Equal(t, "still raiding", ban.Reason)

	require.NoError(t, db.RemoveTempBan("g1", "u1"))
	ban, err = db.GetTempBan("g1", "u1")
	require.NoError(t, err)
	assert.Nil(t, ban)
}

func TestLevels(t *testing.T) {
	db := newTestDB(t)

	// 100 XP crosses the level-1 boundary (level = sqrt(xp/100))
	entry, leveledUp, err := db.AddXP("g1", "u1", 100)
	require.NoError(t, err)
	assert.True(t, leveledUp)
	assert.Equal(t, 1, entry.Level)
	assert.Equal(t, int64(100), entry.XP)

	entry, leveledUp, err = db.AddXP("g1", "u1", 50)
	require.NoError(t, err)
	assert.False(t, leveledUp)
	assert.Equal(t, 1, entry.Level)
	assert.Equal(t, int64(2), entry.Messages)

	// Leaderboard order
	_, _, err = db.AddXP("g1", "u2", 500)
	require.NoError(t, err)

	board, err := db.GetLeaderboard("g1", 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "u2", board[0].UserID)

	rank, err := db.GetLevelRank("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
}

func TestLevelCurve(t *testing.T) {
	assert.Equal(t, 0, LevelForXP(0))
	assert.Equal(t, 0, LevelForXP(99))
	assert.Equal(t, 1, LevelForXP(100))
	assert.Equal(t, 2, LevelForXP(400))
	assert.Equal(t, 10, LevelForXP(10000))

	assert.Equal(t, int64(400), XPForLevel(2))
	assert.Equal(t, int64(0), XPForLevel(0))
}

func TestLevelSettingsDefaults(t *testing.T) {
	db := newTestDB(t)

	s, err := db.GetLevelSettings("g1")
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, 60, s.CooldownSeconds)
	assert.Equal(t, 15, s.MinXP)
	assert.Equal(t, 25, s.MaxXP)

	s.MinXP = 5
	s.MaxXP = 10
	require.NoError(t, db.SetLevelSettings(s))

	s, err = db.GetLevelSettings("g1")
	require.NoError(t, err)
	assert.Equal(t, 5, s.MinXP)
}

func TestTickets(t *testing.T) {
	db := newTestDB(t)

	settings, err := db.GetTicketSettings("g1")
	require.NoError(t, err)
	assert.Nil(t, settings)

	require.NoError(t, db.SetTicketSettings(&TicketSettings{
		GuildID:             "g1",
		PanelChannelID:      "panel",
		TranscriptChannelID: "transcripts",
		CategoryID:          "cat",
		TicketTypes:         "Support,Bug Report",
		ModeratorRoles:      "role1",
		PanelTitle:          "Need help?",
		PanelDescription:    "Open a ticket below.",
	}))

	settings, err = db.GetTicketSettings("g1")
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "Support,Bug Report", settings.TicketTypes)

	id, err := db.CreateTicket("g1", "chan1", "u1", "Support")
	require.NoError(t, err)
	assert.Positive(t, id)

	open, err := db.CountOpenTickets("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, open)

	ticket, err := db.GetTicketByChannel("chan1")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.True(t, ticket.Open)

	require.NoError(t, db.CloseTicket(ticket.ID))

	ticket, err = db.GetTicketByChannel("chan1")
	require.NoError(t, err)
	assert.Nil(t, ticket)
}

func TestListings(t *testing.T) {
	db := newTestDB(t)

	id, err := db.CreateListing("g1", "u1", "GPU", "250 USD", "Lightly used")
	require.NoError(t, err)

	listing, err := db.GetListing("g1", id)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "GPU", listing.Title)

	count, err := db.CountUserListings("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deleted, err := db.DeleteListing("g1", id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.DeleteListing("g1", id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStarboard(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SetStarboardSettings(&StarboardSettings{
		GuildID:   "g1",
		ChannelID: "stars",
		Threshold: 3,
		Emoji:     "⭐",
		Enabled:   true,
	}))

	s, err := db.GetStarboardSettings("g1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 3, s.Threshold)

	require.NoError(t, db.UpsertStarboardEntry(&StarboardEntry{
		GuildID:            "g1",
		MessageID:          "m1",
		StarboardMessageID: "sm1",
		StarCount:          3,
	}))

	e, err := db.GetStarboardEntry("g1", "m1")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 3, e.StarCount)

	// Count update keeps the same starboard message
	require.NoError(t, db.UpsertStarboardEntry(&StarboardEntry{
		GuildID:            "g1",
		MessageID:          "m1",
		StarboardMessageID: "sm1",
		StarCount:          5,
	}))
	e, err = db.GetStarboardEntry("g1", "m1")
	require.NoError(t, err)
	assert.Equal(t, 5, e.StarCount)
}

func TestFilterTerms(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.AddFilterTerm("g1", "badword", FilterBlacklist))
	require.NoError(t, db.AddFilterTerm("g1", "badword2", FilterBlacklist))
	require.NoError(t, db.AddFilterTerm("g1", "okword", FilterWhitelist))

	// Duplicate insert is a no-op
	require.NoError(t, db.AddFilterTerm("g1", "badword", FilterBlacklist))

	terms, err := db.GetFilterTerms("g1", FilterBlacklist)
	require.NoError(t, err)
	assert.Equal(t, []string{"badword", "badword2"}, terms)

	removed, err := db.RemoveFilterTerm("g1", "badword", FilterBlacklist)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.RemoveFilterTerm("g1", "badword", FilterBlacklist)
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Error(t, db.AddFilterTerm("g1", "x", "unknown"))
}
