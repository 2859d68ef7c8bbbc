package tickets

import (
	"fmt"
	"strings"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// componentPrefix namespaces the ticket panel and close buttons.
const componentPrefix = "ticket"

// maxOpenPerUser caps how many tickets a single member can hold open.
const maxOpenPerUser = 1

// TicketsModule manages the support ticket panel and its channels.
type TicketsModule struct {
	config  *config.Config
	db      *database.DB
	service *ReminderService
}

// New creates a new tickets module
func New(deps *types.Dependencies) *TicketsModule {
	return &TicketsModule{
		config:  deps.Config,
		db:      deps.DB,
		service: NewReminderService(deps.Config, deps.DB),
	}
}

// Service returns the stale-ticket reminder service.
func (m *TicketsModule) Service() types.ModuleService {
	return m.service
}

// ComponentPrefix returns the custom ID prefix for ticket components
func (m *TicketsModule) ComponentPrefix() string {
	return componentPrefix
}

// Register adds the ticket command to the command map
func (m *TicketsModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var adminPerms int64 = discordgo.PermissionAdministrator

	cmds["ticket"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "ticket",
			Description:              "Manage the support ticket system",
			DefaultMemberPermissions: &adminPerms,
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup",
					Description: "Post the ticket panel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "Channel to post the panel in",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "types",
							Description: "Comma-separated ticket types (e.g. Support,Report)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "category",
							Description: "Category to create ticket channels under",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "moderator_role",
							Description: "Role that can see ticket channels",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "title",
							Description: "Panel title",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "description",
							Description: "Panel description",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "close",
					Description: "Close the current ticket",
				},
			},
		},
		HandlerFunc: m.handleTicket,
	}
}

func (m *TicketsModule) handleTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}

	switch data.Options[0].Name {
	case "setup":
		m.handleSetup(s, i, data.Options[0].Options)
	case "close":
		m.closeTicket(s, i.Interaction, i.ChannelID, i.Member.User.ID)
	}
}

func (m *TicketsModule) handleSetup(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	settings := &database.TicketSettings{
		GuildID:          i.GuildID,
		PanelTitle:       "🎫 Support Tickets",
		PanelDescription: "Press a button below to open a ticket.",
	}

	for _, opt := range opts {
		switch opt.Name {
		case "channel":
			settings.PanelChannelID = opt.ChannelValue(s).ID
		case "types":
			settings.TicketTypes = opt.StringValue()
		case "category":
			settings.CategoryID = opt.ChannelValue(s).ID
		case "moderator_role":
			settings.ModeratorRoles = opt.RoleValue(s, i.GuildID).ID
		case "title":
			settings.PanelTitle = opt.StringValue()
		case "description":
			settings.PanelDescription = opt.StringValue()
		}
	}

	ticketTypes := splitTypes(settings.TicketTypes)
	if len(ticketTypes) == 0 || len(ticketTypes) > 5 {
		_ = utils.RespondEphemeral(s, i, "❌ Provide between 1 and 5 ticket types.")
		return
	}

	embed := utils.NewEmbed()
	embed.Title = settings.PanelTitle
	embed.Description = settings.PanelDescription
	embed.Color = utils.Colors.Info()

	var buttons []discordgo.MessageComponent
	for _, tt := range ticketTypes {
		buttons = append(buttons, discordgo.Button{
			Label:    tt,
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("%s:open:%s", componentPrefix, tt),
		})
	}

	msg, err := s.ChannelMessageSendComplex(settings.PanelChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: buttons},
		},
	})
	if err != nil {
		m.config.Logger.Error("failed to post ticket panel", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to post the ticket panel.")
		return
	}

	settings.PanelMessageID = msg.ID
	if err := m.db.SetTicketSettings(settings); err != nil {
		m.config.Logger.Error("failed to save ticket settings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to save ticket settings.")
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf("✅ Ticket panel posted in <#%s>.", settings.PanelChannelID))
}

// HandleComponent routes ticket button presses.
func (m *TicketsModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	parts := strings.Split(i.MessageComponentData().CustomID, ":")
	if len(parts) < 2 {
		return
	}

	switch parts[1] {
	case "open":
		ticketType := "Support"
		if len(parts) >= 3 {
			ticketType = parts[2]
		}
		m.openTicket(s, i, ticketType)
	case "close":
		m.closeTicket(s, i.Interaction, i.ChannelID, i.Member.User.ID)
	}
}

// HandleModalSubmit is a no-op; tickets use buttons only.
func (m *TicketsModule) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {}

func (m *TicketsModule) openTicket(s *discordgo.Session, i *discordgo.InteractionCreate, ticketType string) {
	userID := i.Member.User.ID

	// Channel creation can outlast the 3 second response window.
	if err := utils.DeferEphemeral(s, i); err != nil {
		m.config.Logger.Error("failed to defer ticket open", "error", err)
		return
	}

	open, err := m.db.CountOpenTickets(i.GuildID, userID)
	if err != nil {
		m.config.Logger.Error("failed to count open tickets", "error", err)
		_ = utils.EditResponse(s, i, "❌ Failed to open a ticket.")
		return
	}
	if open >= maxOpenPerUser {
		_ = utils.EditResponse(s, i, "❌ You already have an open ticket.")
		return
	}

	settings, err := m.db.GetTicketSettings(i.GuildID)
	if err != nil || settings == nil {
		m.config.Logger.Error("ticket settings missing", "error", err)
		_ = utils.EditResponse(s, i, "❌ The ticket system is not set up.")
		return
	}

	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   i.GuildID, // @everyone
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    userID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		},
		{
			ID:    s.State.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		},
	}
	for _, roleID := range splitTypes(settings.ModeratorRoles) {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		})
	}

	channel, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 fmt.Sprintf("%s-%s", strings.ToLower(ticketType), i.Member.User.Username),
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             settings.CategoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		m.config.Logger.Error("failed to create ticket channel", "error", err)
		_ = utils.EditResponse(s, i, "❌ Failed to create the ticket channel.")
		return
	}

	ticketID, err := m.db.CreateTicket(i.GuildID, channel.ID, userID, ticketType)
	if err != nil {
		m.config.Logger.Error("failed to record ticket", "error", err)
		_ = utils.EditResponse(s, i, "❌ Failed to record the ticket.")
		return
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("Ticket #%d — %s", ticketID, ticketType)
	embed.Description = fmt.Sprintf("<@%s>, a staff member will be with you shortly.", userID)
	embed.Color = utils.Colors.Ok()

	_, _ = s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Close Ticket",
					Style:    discordgo.DangerButton,
					CustomID: componentPrefix + ":close",
				},
			}},
		},
	})

	_ = utils.EditResponse(s, i, fmt.Sprintf("✅ Ticket opened: <#%s>", channel.ID))
}

func (m *TicketsModule) closeTicket(s *discordgo.Session, interaction *discordgo.Interaction, channelID, closedBy string) {
	ticket, err := m.db.GetTicketByChannel(channelID)
	if err != nil {
		m.config.Logger.Error("failed to look up ticket", "error", err)
		return
	}
	if ticket == nil {
		_ = s.InteractionRespond(interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ This channel is not an open ticket.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	if err := m.db.CloseTicket(ticket.ID); err != nil {
		m.config.Logger.Error("failed to close ticket", "error", err)
		return
	}

	m.postTranscriptNote(s, ticket, closedBy)

	_ = s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("🔒 Ticket #%d closed by <@%s>. This channel will be deleted.", ticket.ID, closedBy),
		},
	})

	if _, err := s.ChannelDelete(channelID); err != nil {
		m.config.Logger.Error("failed to delete ticket channel", "error", err, "channel", channelID)
	}
}

// postTranscriptNote records the closure in the transcript channel, if set.
func (m *TicketsModule) postTranscriptNote(s *discordgo.Session, ticket *database.Ticket, closedBy string) {
	settings, err := m.db.GetTicketSettings(ticket.GuildID)
	if err != nil || settings == nil || settings.TranscriptChannelID == "" {
		return
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("Ticket #%d closed", ticket.ID)
	embed.Color = utils.Colors.Warning()
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Type", Value: ticket.TicketType, Inline: true},
		{Name: "Opened by", Value: fmt.Sprintf("<@%s>", ticket.UserID), Inline: true},
		{Name: "Closed by", Value: fmt.Sprintf("<@%s>", closedBy), Inline: true},
		{Name: "Opened at", Value: fmt.Sprintf("<t:%d:f>", ticket.CreatedAt.Unix()), Inline: true},
	}

	if _, err := s.ChannelMessageSendEmbed(settings.TranscriptChannelID, embed); err != nil {
		m.config.Logger.Error("failed to post transcript note", "error", err)
	}
}

func splitTypes(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
