package moderation

import (
	"reflect"
	"testing"
	"time"

	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type modCapture struct {
	timeouts []timeoutCall
	kicks    []string
	bans     []banCall
	unbans   []string
	edits    []string
	dms      []string
	modLogs  []*discordgo.MessageEmbed
}

type timeoutCall struct {
	userID string
	until  *time.Time
}

type banCall struct {
	userID string
	reason string
	days   int
}

func mockSession() *discordgo.Session {
	return &discordgo.Session{
		State: discordgo.NewState(),
	}
}

func testOpts(cap *modCapture) modOpts {
	return modOpts{
		Timeout: func(_ *discordgo.Session, _, userID string, until *time.Time) error {
			cap.timeouts = append(cap.timeouts, timeoutCall{userID: userID, until: until})
			return nil
		},
		Kick: func(_ *discordgo.Session, _, userID, _ string) error {
			cap.kicks = append(cap.kicks, userID)
			return nil
		},
		CreateBan: func(_ *discordgo.Session, _, userID, reason string, days int) error {
			cap.bans = append(cap.bans, banCall{userID: userID, reason: reason, days: days})
			return nil
		},
		RemoveBan: func(_ *discordgo.Session, _, userID string) error {
			cap.unbans = append(cap.unbans, userID)
			return nil
		},
		Respond: func(_ *discordgo.Session, _ *discordgo.Interaction, _ *discordgo.InteractionResponse) error {
			return nil
		},
		EditResponse: func(_ *discordgo.Session, _ *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			if edit != nil && edit.Content != nil {
				cap.edits = append(cap.edits, *edit.Content)
			}
			return nil
		},
		SendDM: func(_ *discordgo.Session, userID, _ string) error {
			cap.dms = append(cap.dms, userID)
			return nil
		},
		LogModAction: func(_ *config.Config, _ *discordgo.Session, embed *discordgo.MessageEmbed) error {
			cap.modLogs = append(cap.modLogs, embed)
			return nil
		},
	}
}

func newModule(t *testing.T, cap *modCapture) *ModerationModule {
	t.Helper()
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.NewMockConfig(map[string]interface{}{
		"mod_action_log_channel_id": "mod-log-chan",
	})
	return &ModerationModule{config: cfg, db: db, opts: testOpts(cap)}
}

func buildInteraction(name, invokerID, targetID string, stringOpts map[string]string) *discordgo.InteractionCreate {
	var opts []*discordgo.ApplicationCommandInteractionDataOption
	if targetID != "" {
		opts = append(opts, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  "user",
			Type:  discordgo.ApplicationCommandOptionUser,
			Value: targetID,
		})
	}
	for k, v := range stringOpts {
		opts = append(opts, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  k,
			Type:  discordgo.ApplicationCommandOptionString,
			Value: v,
		})
	}

	data := discordgo.ApplicationCommandInteractionData{
		Name:    name,
		Options: opts,
	}
	if targetID != "" {
		data.Resolved = &discordgo.ApplicationCommandInteractionDataResolved{
			Users: map[string]*discordgo.User{
				targetID: {ID: targetID, Username: "target"},
			},
		}
	}

	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "guild1",
			Member:  &discordgo.Member{User: &discordgo.User{ID: invokerID, Username: "mod"}},
			Data:    data,
		},
	}
}

func TestMuteWithDuration(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	i := buildInteraction("mute", "mod1", "user1", map[string]string{
		"duration": "2h 30m",
		"reason":   "spam",
	})
	before := time.Now()
	m.handleMute(mockSession(), i)

	require.Len(t, cap.timeouts, 1)
	require.NotNil(t, cap.timeouts[0].until)
	got := cap.timeouts[0].until.Sub(before)
	assert.InDelta(t, (9000 * time.Second).Seconds(), got.Seconds(), 5)

	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "2h 30m")
	assert.Contains(t, cap.edits[0], "spam")
	assert.Len(t, cap.modLogs, 1)
}

func TestMuteDefaultDuration(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	m.handleMute(mockSession(), buildInteraction("mute", "mod1", "user1", nil))

	require.Len(t, cap.timeouts, 1)
	require.NotNil(t, cap.timeouts[0].until)
	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "10m")
}

func TestMuteBadDuration(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	m.handleMute(mockSession(), buildInteraction("mute", "mod1", "user1", map[string]string{
		"duration": "@@@@",
	}))

	assert.Empty(t, cap.timeouts)
	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "Could not interpret")
}

func TestMuteTrailingTextIgnored(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	// The duration grammar matches a prefix only; trailing text is dropped.
	m.handleMute(mockSession(), buildInteraction("mute", "mod1", "user1", map[string]string{
		"duration": "1d please",
	}))

	require.Len(t, cap.timeouts, 1)
	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "1d")
}

func TestUnmute(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	m.handleUnmute(mockSession(), buildInteraction("unmute", "mod1", "user1", nil))

	require.Len(t, cap.timeouts, 1)
	assert.Nil(t, cap.timeouts[0].until)
}

func TestCannotModerateSelf(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	m.handleKick(mockSession(), buildInteraction("kick", "mod1", "mod1", nil))

	assert.Empty(t, cap.kicks)
	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "cannot moderate yourself")
}

func TestPermanentBan(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	m.handleBan(mockSession(), buildInteraction("ban", "mod1", "user1", map[string]string{
		"reason": "raiding",
	}))

	require.Len(t, cap.bans, 1)
	assert.Equal(t, "user1", cap.bans[0].userID)

	// No temp ban recorded for a permanent ban
	ban, err := m.db.GetTempBan("guild1", "user1")
	require.NoError(t, err)
	assert.Nil(t, ban)

	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "Permanent")
	assert.Len(t, cap.dms, 1)
}

func TestTempBanRecordsExpiry(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	m.handleBan(mockSession(), buildInteraction("ban", "mod1", "user1", map[string]string{
		"duration": "7d",
	}))

	require.Len(t, cap.bans, 1)

	ban, err := m.db.GetTempBan("guild1", "user1")
	require.NoError(t, err)
	require.NotNil(t, ban)
	assert.InDelta(t, float64(time.Now().Unix()+7*86400), float64(ban.ExpiresAt), 5)

	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "7d")
}

func TestWarnAndClear(t *testing.T) {
	cap := &modCapture{}
	m := newModule(t, cap)

	m.handleWarn(mockSession(), buildInteraction("warn", "mod1", "user1", map[string]string{
		"reason": "spamming",
	}))
	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "1 warning(s)")
	assert.Len(t, cap.dms, 1)

	m.handleWarnings(mockSession(), buildInteraction("warnings", "mod1", "user1", nil))
	require.Len(t, cap.edits, 2)
	assert.Contains(t, cap.edits[1], "spamming")

	m.handleClearWarnings(mockSession(), buildInteraction("clearwarnings", "mod1", "user1", nil))
	require.Len(t, cap.edits, 3)
	assert.Contains(t, cap.edits[2], "Cleared 1")
}

func TestSweepExpiredBans(t *testing.T) {
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.NewMockConfig(nil)
	svc := NewExpiryService(cfg, db)

	var unbanned []string
	svc.removeBan = func(guildID, userID string) error {
		unbanned = append(unbanned, userID)
		return nil
	}

	now := time.Now().Unix()
	require.NoError(t, db.AddTempBan("g1", "expired", "x", now-10))
	require.NoError(t, db.AddTempBan("g1", "active", "x", now+3600))

	require.NoError(t, svc.SweepExpiredBans())

	assert.Equal(t, []string{"expired"}, unbanned)

	ban, err := db.GetTempBan("g1", "expired")
	require.NoError(t, err)
	assert.Nil(t, ban)

	ban, err = db.GetTempBan("g1", "active")
	require.NoError(t, err)
	assert.NotNil(t, ban)
}

func TestDefaultModOptsUsesSharedModLog(t *testing.T) {
	opts := defaultModOpts()
	require.NotNil(t, opts.LogModAction)
	assert.Equal(t,
		reflect.ValueOf(utils.LogModAction).Pointer(),
		reflect.ValueOf(opts.LogModAction).Pointer())
}
