package raid

import (
	"fmt"

	"locust/internal/commands/types"
	"locust/internal/config"
	raidsvc "locust/internal/raid"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// RaidModule exposes manual control over anti-raid lockdown.
type RaidModule struct {
	config  *config.Config
	tracker *raidsvc.Tracker
}

// New creates a new raid module sharing the bot-wide join tracker.
func New(deps *types.Dependencies, tracker *raidsvc.Tracker) *RaidModule {
	return &RaidModule{
		config:  deps.Config,
		tracker: tracker,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *RaidModule) Service() types.ModuleService {
	return nil
}

// Register adds the raid command to the command map
func (m *RaidModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var adminPerms int64 = discordgo.PermissionAdministrator

	cmds["raid"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "raid",
			Description:              "Control anti-raid lockdown",
			DefaultMemberPermissions: &adminPerms,
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "on",
					Description: "Enable lockdown manually",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "off",
					Description: "Disable lockdown",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show lockdown status",
				},
			},
		},
		HandlerFunc: m.handleRaid,
	}
}

func (m *RaidModule) handleRaid(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}

	switch data.Options[0].Name {
	case "on":
		m.tracker.SetLockdown(i.GuildID, true)
		_ = utils.LogToChannel(m.config, s, fmt.Sprintf("🛡️ Lockdown enabled manually by <@%s>", i.Member.User.ID))
		_ = utils.RespondEphemeral(s, i, "🛡️ Lockdown enabled. New members will be turned away.")
	case "off":
		m.tracker.SetLockdown(i.GuildID, false)
		_ = utils.LogToChannel(m.config, s, fmt.Sprintf("🛡️ Lockdown disabled by <@%s>", i.Member.User.ID))
		_ = utils.RespondEphemeral(s, i, "✅ Lockdown disabled.")
	case "status":
		if m.tracker.Locked(i.GuildID) {
			_ = utils.RespondEphemeral(s, i, "🛡️ Lockdown is **active**.")
		} else {
			_ = utils.RespondEphemeral(s, i, "Lockdown is not active.")
		}
	}
}
