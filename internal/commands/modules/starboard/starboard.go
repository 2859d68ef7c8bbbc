package starboard

import (
	"fmt"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/database"
	starboardsvc "locust/internal/starboard"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// StarboardModule configures the starboard.
type StarboardModule struct {
	config *config.Config
	db     *database.DB
}

// New creates a new starboard module
func New(deps *types.Dependencies) *StarboardModule {
	return &StarboardModule{
		config: deps.Config,
		db:     deps.DB,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *StarboardModule) Service() types.ModuleService {
	return nil
}

// Register adds the starboard command to the command map
func (m *StarboardModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var adminPerms int64 = discordgo.PermissionAdministrator
	cmds["starboard"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "starboard",
			Description:              "Configure the starboard",
			DefaultMemberPermissions: &adminPerms,
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup",
					Description: "Enable the starboard in a channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "Channel to post starred messages in",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "threshold",
							Description: "Stars required before a message is posted",
							Required:    false,
							MinValue:    utils.Float64Ptr(1),
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "emoji",
							Description: "Emoji to count (defaults to ⭐)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "threshold",
					Description: "Change the star threshold",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "count",
							Description: "Stars required",
							Required:    true,
							MinValue:    utils.Float64Ptr(1),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "disable",
					Description: "Disable the starboard",
				},
			},
		},
		HandlerFunc: m.handleStarboard,
	}
}

func (m *StarboardModule) handleStarboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "setup":
		m.handleSetup(s, i, sub.Options)
	case "threshold":
		m.handleThreshold(s, i, sub.Options)
	case "disable":
		m.handleDisable(s, i)
	}
}

func (m *StarboardModule) handleSetup(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	settings := &database.StarboardSettings{
		GuildID:   i.GuildID,
		Threshold: starboardsvc.DefaultThreshold,
		Emoji:     starboardsvc.DefaultEmoji,
		Enabled:   true,
	}

	for _, opt := range opts {
		switch opt.Name {
		case "channel":
			settings.ChannelID = opt.ChannelValue(s).ID
		case "threshold":
			settings.Threshold = int(opt.IntValue())
		case "emoji":
			settings.Emoji = opt.StringValue()
		}
	}

	if err := m.db.SetStarboardSettings(settings); err != nil {
		m.config.Logger.Error("failed to save starboard settings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to save starboard settings.")
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf(
		"✅ Starboard enabled in <#%s>: %d× %s required.",
		settings.ChannelID, settings.Threshold, settings.Emoji,
	))
}

func (m *StarboardModule) handleThreshold(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	settings, err := m.db.GetStarboardSettings(i.GuildID)
	if err != nil {
		m.config.Logger.Error("failed to load starboard settings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to load starboard settings.")
		return
	}
	if settings == nil {
		_ = utils.RespondEphemeral(s, i, "❌ Set up the starboard first with `/starboard setup`.")
		return
	}

	for _, opt := range opts {
		if opt.Name == "count" {
			settings.Threshold = int(opt.IntValue())
		}
	}

	if err := m.db.SetStarboardSettings(settings); err != nil {
		m.config.Logger.Error("failed to save starboard settings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to save starboard settings.")
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf("✅ Starboard threshold set to %d.", settings.Threshold))
}

func (m *StarboardModule) handleDisable(s *discordgo.Session, i *discordgo.InteractionCreate) {
	settings, err := m.db.GetStarboardSettings(i.GuildID)
	if err != nil {
		m.config.Logger.Error("failed to load starboard settings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to load starboard settings.")
		return
	}
	if settings == nil || !settings.Enabled {
		_ = utils.RespondEphemeral(s, i, "The starboard is not enabled.")
		return
	}

	settings.Enabled = false
	if err := m.db.SetStarboardSettings(settings); err != nil {
		m.config.Logger.Error("failed to save starboard settings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to save starboard settings.")
		return
	}

	_ = utils.RespondEphemeral(s, i, "✅ Starboard disabled.")
}
