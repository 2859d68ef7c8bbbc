package ping

import (
	"fmt"
	"time"

	"locust/internal/commands/types"
	"locust/internal/duration"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// PingModule implements ping, info, and serverinfo.
type PingModule struct {
	startTime time.Time
}

// New creates a new ping module
func New(deps *types.Dependencies) *PingModule {
	return &PingModule{startTime: time.Now()}
}

// Register adds the basic commands to the command map
func (m *PingModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["ping"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "ping",
			Description: "Check the bot's latency",
		},
		HandlerFunc: m.handlePing,
	}

	cmds["info"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "info",
			Description: "Get information about the bot",
		},
		HandlerFunc: m.handleInfo,
	}

	cmds["serverinfo"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "serverinfo",
			Description: "Display information about the current server",
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
			},
		},
		HandlerFunc: m.handleServerInfo,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *PingModule) Service() types.ModuleService {
	return nil
}

func (m *PingModule) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Round(time.Millisecond)
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("🏓 Pong! Latency: %s", latency),
		},
	})
}

func (m *PingModule) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	uptime := duration.Duration(int64(time.Since(m.startTime).Seconds()))

	guilds := len(s.State.Guilds)

	embed := utils.NewEmbed()
	embed.Title = "Locust Information"
	embed.Description = "A multi-purpose Discord bot."
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Uptime", Value: uptime.String(), Inline: true},
		{Name: "Servers", Value: fmt.Sprintf("%d", guilds), Inline: true},
		{Name: "Library", Value: "discordgo", Inline: true},
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (m *PingModule) handleServerInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil {
			_ = utils.RespondEphemeral(s, i, "❌ Could not fetch server information.")
			return
		}
	}

	embed := utils.NewEmbed()
	embed.Title = guild.Name
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
		{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
		{Name: "Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
		{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
