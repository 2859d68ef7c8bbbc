package starboard

import (
	"testing"
	"time"

	"locust/internal/config"
	"locust/internal/database"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardCalls struct {
	posted      []*discordgo.MessageSend
	postChannel string
	edited      []string
	editMsgID   string
}

func newTestService(t *testing.T, msg *discordgo.Message) (*Service, *database.DB, *boardCalls) {
	t.Helper()

	cfg := config.NewMockConfig(nil)
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(cfg, db)
	calls := &boardCalls{}
	svc.opts = boardOpts{
		FetchMessage: func(s *discordgo.Session, channelID, messageID string) (*discordgo.Message, error) {
			return msg, nil
		},
		Post: func(s *discordgo.Session, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
			calls.postChannel = channelID
			calls.posted = append(calls.posted, data)
			return &discordgo.Message{ID: "board-msg-1"}, nil
		},
		Edit: func(s *discordgo.Session, channelID, messageID, content string) (*discordgo.Message, error) {
			calls.editMsgID = messageID
			calls.edited = append(calls.edited, content)
			return &discordgo.Message{ID: messageID}, nil
		},
	}
	return svc, db, calls
}

func starredMessage(count int) *discordgo.Message {
	return &discordgo.Message{
		ID:        "msg1",
		ChannelID: "chan1",
		GuildID:   "guild1",
		Content:   "what a catch",
		Author:    &discordgo.User{ID: "author1", Username: "fisher"},
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Reactions: []*discordgo.MessageReactions{
			{Emoji: &discordgo.Emoji{Name: "⭐"}, Count: count},
		},
	}
}

func enableStarboard(t *testing.T, db *database.DB) {
	t.Helper()
	require.NoError(t, db.SetStarboardSettings(&database.StarboardSettings{
		GuildID:   "guild1",
		ChannelID: "board-chan",
		Threshold: 3,
		Emoji:     "⭐",
		Enabled:   true,
	}))
}

func TestHandleReactionBelowThreshold(t *testing.T) {
	svc, db, calls := newTestService(t, starredMessage(2))
	enableStarboard(t, db)

	require.NoError(t, svc.HandleReaction(nil, "guild1", "chan1", "msg1", "⭐"))

	assert.Empty(t, calls.posted)
	assert.Empty(t, calls.edited)

	entry, err := db.GetStarboardEntry("guild1", "msg1")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestHandleReactionPostsAtThreshold(t *testing.T) {
	svc, db, calls := newTestService(t, starredMessage(3))
	enableStarboard(t, db)

	require.NoError(t, svc.HandleReaction(nil, "guild1", "chan1", "msg1", "⭐"))

	require.Len(t, calls.posted, 1)
	assert.Equal(t, "board-chan", calls.postChannel)
	assert.Equal(t, "⭐ **3** <#chan1>", calls.posted[0].Content)
	require.Len(t, calls.posted[0].Embeds, 1)
	assert.Equal(t, "what a catch", calls.posted[0].Embeds[0].Description)

	entry, err := db.GetStarboardEntry("guild1", "msg1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "board-msg-1", entry.StarboardMessageID)
	assert.Equal(t, 3, entry.StarCount)
}

func TestHandleReactionUpdatesExistingEntry(t *testing.T) {
	svc, db, calls := newTestService(t, starredMessage(5))
	enableStarboard(t, db)
	require.NoError(t, db.UpsertStarboardEntry(&database.StarboardEntry{
		GuildID:            "guild1",
		MessageID:          "msg1",
		StarboardMessageID: "board-msg-1",
		StarCount:          3,
	}))

	require.NoError(t, svc.HandleReaction(nil, "guild1", "chan1", "msg1", "⭐"))

	assert.Empty(t, calls.posted)
	require.Len(t, calls.edited, 1)
	assert.Equal(t, "board-msg-1", calls.editMsgID)
	assert.Equal(t, "⭐ **5** <#chan1>", calls.edited[0])

	entry, err := db.GetStarboardEntry("guild1", "msg1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 5, entry.StarCount)
}

func TestHandleReactionIgnoresOtherEmoji(t *testing.T) {
	svc, db, calls := newTestService(t, starredMessage(10))
	enableStarboard(t, db)

	require.NoError(t, svc.HandleReaction(nil, "guild1", "chan1", "msg1", "🔥"))
	assert.Empty(t, calls.posted)
}

func TestHandleReactionIgnoresBoardChannel(t *testing.T) {
	svc, db, calls := newTestService(t, starredMessage(10))
	enableStarboard(t, db)

	require.NoError(t, svc.HandleReaction(nil, "guild1", "board-chan", "msg1", "⭐"))
	assert.Empty(t, calls.posted)
}
