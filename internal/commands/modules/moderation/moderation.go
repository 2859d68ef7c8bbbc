package moderation

import (
	"time"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const banDMMessage = "You have been banned from this server. Contact the moderation team if you believe this was a mistake."

// modOpts injects the Discord side effects so handlers can be tested
// without a live session.
type modOpts struct {
	Timeout      func(s *discordgo.Session, guildID, userID string, until *time.Time) error
	Kick         func(s *discordgo.Session, guildID, userID, reason string) error
	CreateBan    func(s *discordgo.Session, guildID, userID, reason string, days int) error
	RemoveBan    func(s *discordgo.Session, guildID, userID string) error
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
	SendDM       func(s *discordgo.Session, userID, message string) error
	LogModAction func(cfg *config.Config, s *discordgo.Session, embed *discordgo.MessageEmbed) error
}

func defaultModOpts() modOpts {
	return modOpts{
		Timeout:      timeout,
		Kick:         kick,
		CreateBan:    createBan,
		RemoveBan:    removeBan,
		Respond:      respond,
		EditResponse: editResponse,
		SendDM:       sendDM,
		LogModAction: utils.LogModAction,
	}
}

func timeout(s *discordgo.Session, guildID, userID string, until *time.Time) error {
	return s.GuildMemberTimeout(guildID, userID, until)
}

func kick(s *discordgo.Session, guildID, userID, reason string) error {
	return s.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func createBan(s *discordgo.Session, guildID, userID, reason string, days int) error {
	return s.GuildBanCreateWithReason(guildID, userID, reason, days)
}

func removeBan(s *discordgo.Session, guildID, userID string) error {
	return s.GuildBanDelete(guildID, userID)
}

func respond(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return s.InteractionRespond(i, resp)
}

func editResponse(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
	_, err := s.InteractionResponseEdit(i, edit)
	return err
}

func sendDM(s *discordgo.Session, userID, message string) error {
	ch, err := s.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = s.ChannelMessageSend(ch.ID, message)
	return err
}

// ModerationModule implements mute, kick, ban, and warning commands.
type ModerationModule struct {
	config  *config.Config
	db      *database.DB
	opts    modOpts
	service *ExpiryService
}

// New creates a new moderation module
func New(deps *types.Dependencies) *ModerationModule {
	m := &ModerationModule{
		config: deps.Config,
		db:     deps.DB,
		opts:   defaultModOpts(),
	}
	m.service = NewExpiryService(deps.Config, deps.DB)
	return m
}

// Service returns the temp-ban expiry service.
func (m *ModerationModule) Service() types.ModuleService {
	return m.service
}

// Register adds the moderation commands to the command map
func (m *ModerationModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var moderatePerms int64 = discordgo.PermissionModerateMembers
	var kickPerms int64 = discordgo.PermissionKickMembers
	var banPerms int64 = discordgo.PermissionBanMembers
	guildOnly := &[]discordgo.InteractionContextType{
		discordgo.InteractionContextGuild,
	}

	cmds["mute"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "mute",
			Description:              "Timeout a user for a duration like '1d 2h' (default 10m)",
			DefaultMemberPermissions: &moderatePerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to mute",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "duration",
					Description: "How long, e.g. '30m', '1d 2h', or an absolute time",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for the mute",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleMute,
	}

	cmds["unmute"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "unmute",
			Description:              "Remove a user's timeout",
			DefaultMemberPermissions: &moderatePerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to unmute",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for removing the timeout",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleUnmute,
	}

	cmds["kick"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "kick",
			Description:              "Kick a user from the server",
			DefaultMemberPermissions: &kickPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to kick",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for the kick",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleKick,
	}

	cmds["ban"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "ban",
			Description:              "Ban a user, optionally for a limited duration",
			DefaultMemberPermissions: &banPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to ban",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "duration",
					Description: "Temp ban length like '7d'; omit for a permanent ban",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "delete-days",
					Description: "Days of messages to purge, 0 to 7 (default 0)",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for the ban (shown in audit log)",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleBan,
	}

	cmds["unban"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "unban",
			Description:              "Remove a user's ban",
			DefaultMemberPermissions: &banPerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "user-id",
					Description: "ID of the user to unban",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleUnban,
	}

	cmds["warn"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "warn",
			Description:              "Warn a user",
			DefaultMemberPermissions: &moderatePerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to warn",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason for the warning",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleWarn,
	}

	cmds["warnings"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "warnings",
			Description:              "List a user's warnings",
			DefaultMemberPermissions: &moderatePerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to look up",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleWarnings,
	}

	cmds["clearwarnings"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "clearwarnings",
			Description:              "Clear all warnings for a user",
			DefaultMemberPermissions: &moderatePerms,
			Contexts:                 guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user whose warnings to clear",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleClearWarnings,
	}
}
