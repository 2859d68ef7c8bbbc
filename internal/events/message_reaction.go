package events

import (
	"locust/internal/config"
	"locust/internal/starboard"

	"github.com/bwmarrin/discordgo"
)

// OnMessageReactionAdd re-evaluates a message for the starboard.
func OnMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd, cfg *config.Config, svc *starboard.Service) {
	if r.GuildID == "" {
		return
	}
	if err := svc.HandleReaction(s, r.GuildID, r.ChannelID, r.MessageID, r.Emoji.Name); err != nil {
		cfg.Logger.Errorf("Error handling starboard reaction: %v", err)
	}
}

// OnMessageReactionRemove keeps starboard counts honest when stars are
// withdrawn.
func OnMessageReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove, cfg *config.Config, svc *starboard.Service) {
	if r.GuildID == "" {
		return
	}
	if err := svc.HandleReaction(s, r.GuildID, r.ChannelID, r.MessageID, r.Emoji.Name); err != nil {
		cfg.Logger.Errorf("Error handling starboard reaction: %v", err)
	}
}
