package utils

import (
	"errors"
	"time"

	"locust/internal/config"

	"github.com/bwmarrin/discordgo"
)

// LogToChannel posts an operational message to the configured bot log channel.
func LogToChannel(cfg *config.Config, s *discordgo.Session, m string) error {
	logEmbed := &discordgo.MessageEmbed{
		Title:       "Locust Message",
		Description: m,
		Color:       Colors.Info(),
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	if id := cfg.GetBotLogChannelID(); id != "" {
		_, err := s.ChannelMessageSendEmbed(id, logEmbed)
		if err != nil {
			return err
		}
	} else {
		return errors.New("unable to log to channel: bot_log_channel_id is not set")
	}

	return nil
}

// LogModAction posts a moderation embed to the mod action log channel.
// Missing configuration is not an error; smaller servers run without one.
func LogModAction(cfg *config.Config, s *discordgo.Session, embed *discordgo.MessageEmbed) error {
	id := cfg.GetModActionLogChannelID()
	if id == "" {
		return nil
	}
	_, err := s.ChannelMessageSendEmbed(id, embed)
	return err
}
