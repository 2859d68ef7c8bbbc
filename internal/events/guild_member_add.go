package events

import (
	"fmt"

	"locust/internal/config"
	"locust/internal/raid"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// OnGuildMemberAdd feeds the join-rate tracker and turns newcomers away
// while a guild is in lockdown.
func OnGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd, cfg *config.Config, tracker *raid.Tracker) {
	if tracker.Locked(m.GuildID) {
		turnAway(s, m, cfg)
		return
	}

	if tracker.RecordJoin(m.GuildID) {
		cfg.Logger.Warnf("Raid detected in guild %s, entering lockdown", m.GuildID)
		_ = utils.LogToChannel(cfg, s, fmt.Sprintf("🚨 Raid detected in guild %s. Lockdown enabled automatically.", m.GuildID))
		turnAway(s, m, cfg)
	}
}

func turnAway(s *discordgo.Session, m *discordgo.GuildMemberAdd, cfg *config.Config) {
	// Best effort: the DM fails silently when the user blocks DMs.
	if dm, err := s.UserChannelCreate(m.User.ID); err == nil {
		_, _ = s.ChannelMessageSend(dm.ID, "This server is temporarily locked down. Please try joining again later.")
	}

	if err := s.GuildMemberDelete(m.GuildID, m.User.ID); err != nil {
		cfg.Logger.Errorf("Failed to remove member %s during lockdown: %v", m.User.ID, err)
		return
	}

	cfg.Logger.Infof("Turned away member %s (%s) during lockdown", m.User.Username, m.User.ID)
}
