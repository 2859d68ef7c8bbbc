package starboard

import (
	"fmt"

	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// DefaultThreshold is the star count required before a message is posted
// to the starboard when a guild has not configured one.
const DefaultThreshold = 3

// DefaultEmoji is the reaction the starboard counts by default.
const DefaultEmoji = "⭐"

// boardOpts holds the Discord calls the service makes, injectable for
// testing.
type boardOpts struct {
	FetchMessage func(s *discordgo.Session, channelID, messageID string) (*discordgo.Message, error)
	Post         func(s *discordgo.Session, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	Edit         func(s *discordgo.Session, channelID, messageID, content string) (*discordgo.Message, error)
}

func defaultBoardOpts() boardOpts {
	return boardOpts{
		FetchMessage: func(s *discordgo.Session, channelID, messageID string) (*discordgo.Message, error) {
			return s.ChannelMessage(channelID, messageID)
		},
		Post: func(s *discordgo.Session, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
			return s.ChannelMessageSendComplex(channelID, data)
		},
		Edit: func(s *discordgo.Session, channelID, messageID, content string) (*discordgo.Message, error) {
			return s.ChannelMessageEdit(channelID, messageID, content)
		},
	}
}

// Service mirrors heavily-starred messages into a guild's starboard channel.
type Service struct {
	config *config.Config
	db     *database.DB
	opts   boardOpts
}

func NewService(cfg *config.Config, db *database.DB) *Service {
	return &Service{config: cfg, db: db, opts: defaultBoardOpts()}
}

// HandleReaction re-evaluates a message after a starboard reaction was
// added or removed.
func (svc *Service) HandleReaction(s *discordgo.Session, guildID, channelID, messageID, emojiName string) error {
	settings, err := svc.db.GetStarboardSettings(guildID)
	if err != nil {
		return fmt.Errorf("failed to load starboard settings: %w", err)
	}
	if settings == nil || !settings.Enabled || emojiName != settings.Emoji {
		return nil
	}
	// Never mirror the starboard channel into itself.
	if channelID == settings.ChannelID {
		return nil
	}

	msg, err := svc.opts.FetchMessage(s, channelID, messageID)
	if err != nil {
		return fmt.Errorf("failed to fetch message: %w", err)
	}

	count := 0
	for _, reaction := range msg.Reactions {
		if reaction.Emoji.Name == settings.Emoji {
			count = reaction.Count
			break
		}
	}

	entry, err := svc.db.GetStarboardEntry(guildID, messageID)
	if err != nil {
		return fmt.Errorf("failed to load starboard entry: %w", err)
	}

	header := fmt.Sprintf("%s **%d** <#%s>", settings.Emoji, count, channelID)

	if entry == nil {
		if count < settings.Threshold {
			return nil
		}
		posted, err := svc.opts.Post(s, settings.ChannelID, &discordgo.MessageSend{
			Content: header,
			Embeds:  []*discordgo.MessageEmbed{buildEmbed(msg)},
		})
		if err != nil {
			return fmt.Errorf("failed to post starboard message: %w", err)
		}
		return svc.db.UpsertStarboardEntry(&database.StarboardEntry{
			GuildID:            guildID,
			MessageID:          messageID,
			StarboardMessageID: posted.ID,
			StarCount:          count,
		})
	}

	// Already on the board: keep the count fresh. Posts stay up even if
	// stars later drop below the threshold.
	if _, err := svc.opts.Edit(s, settings.ChannelID, entry.StarboardMessageID, header); err != nil {
		return fmt.Errorf("failed to update starboard message: %w", err)
	}
	entry.StarCount = count
	return svc.db.UpsertStarboardEntry(entry)
}

func buildEmbed(msg *discordgo.Message) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Color = utils.Colors.Fancy()
	embed.Description = msg.Content
	embed.Timestamp = msg.Timestamp.Format("2006-01-02T15:04:05Z07:00")
	if msg.Author != nil {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    msg.Author.Username,
			IconURL: msg.Author.AvatarURL("64"),
		}
	}
	for _, att := range msg.Attachments {
		if att.Width > 0 {
			embed.Image = &discordgo.MessageEmbedImage{URL: att.URL}
			break
		}
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Source", Value: fmt.Sprintf("[Jump to message](https://discord.com/channels/%s/%s/%s)", msg.GuildID, msg.ChannelID, msg.ID)},
	}
	return embed
}
