package leveling

import (
	"fmt"
	"strings"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// LevelingModule exposes XP rank lookups and per-guild leveling configuration.
type LevelingModule struct {
	config *config.Config
	db     *database.DB
}

// New creates a new leveling module
func New(deps *types.Dependencies) *LevelingModule {
	return &LevelingModule{
		config: deps.Config,
		db:     deps.DB,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *LevelingModule) Service() types.ModuleService {
	return nil
}

// Register adds the rank, leaderboard, and level commands to the command map
func (m *LevelingModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var adminPerms int64 = discordgo.PermissionAdministrator
	guildOnly := &[]discordgo.InteractionContextType{
		discordgo.InteractionContextGuild,
	}

	cmds["rank"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "rank",
			Description: "Show a member's level and XP",
			Contexts:    guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to look up (defaults to you)",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleRank,
	}

	cmds["leaderboard"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "leaderboard",
			Description: "Show the top members by XP",
			Contexts:    guildOnly,
		},
		HandlerFunc: m.handleLeaderboard,
	}

	cmds["level"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "level",
			Description:              "Configure leveling",
			DefaultMemberPermissions: &adminPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set a member's level",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Member to adjust",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "level",
							Description: "New level",
							Required:    true,
							MinValue:    utils.Float64Ptr(0),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "config",
					Description: "Adjust leveling settings",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Whether members earn XP",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "announce",
							Description: "Whether level-ups are announced",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "Channel for level-up announcements",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reward",
					Description: "Grant a role when a level is reached",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "level",
							Description: "Level that earns the role",
							Required:    true,
							MinValue:    utils.Float64Ptr(1),
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to grant",
							Required:    true,
						},
					},
				},
			},
		},
		HandlerFunc: m.handleLevel,
	}
}

func (m *LevelingModule) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := i.Member.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}

	entry, err := m.db.GetLevelEntry(i.GuildID, target.ID)
	if err != nil {
		m.config.Logger.Error("failed to load level entry", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to look up rank.")
		return
	}
	if entry == nil {
		_ = utils.RespondEphemeral(s, i, fmt.Sprintf("%s hasn't earned any XP yet.", target.Username))
		return
	}

	rank, err := m.db.GetLevelRank(i.GuildID, target.ID)
	if err != nil {
		m.config.Logger.Error("failed to compute rank", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to look up rank.")
		return
	}

	next := database.XPForLevel(entry.Level + 1)
	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("Rank for %s", target.Username)
	embed.Color = utils.Colors.Info()
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Rank", Value: fmt.Sprintf("#%d", rank), Inline: true},
		{Name: "Level", Value: fmt.Sprintf("%d", entry.Level), Inline: true},
		{Name: "XP", Value: fmt.Sprintf("%d / %d", entry.XP, next), Inline: true},
		{Name: "Messages", Value: fmt.Sprintf("%d", entry.Messages), Inline: true},
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (m *LevelingModule) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	entries, err := m.db.GetLeaderboard(i.GuildID, 10)
	if err != nil {
		m.config.Logger.Error("failed to load leaderboard", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to load the leaderboard.")
		return
	}
	if len(entries) == 0 {
		_ = utils.RespondEphemeral(s, i, "Nobody has earned XP yet.")
		return
	}

	var sb strings.Builder
	for idx, entry := range entries {
		fmt.Fprintf(&sb, "**%d.** <@%s> — level %d (%d XP)\n", idx+1, entry.UserID, entry.Level, entry.XP)
	}

	embed := utils.NewEmbed()
	embed.Title = "🏆 Leaderboard"
	embed.Description = sb.String()
	embed.Color = utils.Colors.Fancy()

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (m *LevelingModule) handleLevel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "set":
		m.handleLevelSet(s, i, sub.Options)
	case "config":
		m.handleLevelConfig(s, i, sub.Options)
	case "reward":
		m.handleLevelReward(s, i, sub.Options)
	}
}

func (m *LevelingModule) handleLevelSet(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var target *discordgo.User
	var level int
	for _, opt := range opts {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "level":
			level = int(opt.IntValue())
		}
	}
	if target == nil {
		_ = utils.RespondEphemeral(s, i, "❌ No member provided.")
		return
	}

	if err := m.db.SetLevel(i.GuildID, target.ID, level); err != nil {
		m.config.Logger.Error("failed to set level", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to set level.")
		return
	}
	_ = utils.RespondEphemeral(s, i, fmt.Sprintf("✅ Set %s to level %d.", target.Username, level))
}

func (m *LevelingModule) handleLevelConfig(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	settings, err := m.db.GetLevelSettings(i.GuildID)
	if err != nil {
		m.config.Logger.Error("failed to load level settings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to load settings.")
		return
	}

	for _, opt := range opts {
		switch opt.Name {
		case "enabled":
			settings.Enabled = opt.BoolValue()
		case "announce":
			settings.AnnounceLevelUp = opt.BoolValue()
		case "channel":
			settings.LevelUpChannelID = opt.ChannelValue(s).ID
		}
	}

	if err := m.db.SetLevelSettings(settings); err != nil {
		m.config.Logger.Error("failed to save level settings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to save settings.")
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf(
		"✅ Leveling updated: enabled=%t, announce=%t.",
		settings.Enabled, settings.AnnounceLevelUp,
	))
}

func (m *LevelingModule) handleLevelReward(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var level int
	var roleID string
	for _, opt := range opts {
		switch opt.Name {
		case "level":
			level = int(opt.IntValue())
		case "role":
			roleID = opt.RoleValue(s, i.GuildID).ID
		}
	}

	if err := m.db.SetRoleReward(i.GuildID, level, roleID); err != nil {
		m.config.Logger.Error("failed to save role reward", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to save role reward.")
		return
	}
	_ = utils.RespondEphemeral(s, i, fmt.Sprintf("✅ Members reaching level %d now receive <@&%s>.", level, roleID))
}
