package purge

import (
	"fmt"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// purgeOpts injects the Discord side effects for testing.
type purgeOpts struct {
	FetchMessages func(s *discordgo.Session, channelID string, limit int) ([]*discordgo.Message, error)
	BulkDelete    func(s *discordgo.Session, channelID string, messageIDs []string) error
	Respond       func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse  func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

func defaultPurgeOpts() purgeOpts {
	return purgeOpts{
		FetchMessages: func(s *discordgo.Session, channelID string, limit int) ([]*discordgo.Message, error) {
			return s.ChannelMessages(channelID, limit, "", "", "")
		},
		BulkDelete: func(s *discordgo.Session, channelID string, messageIDs []string) error {
			return s.ChannelMessagesBulkDelete(channelID, messageIDs)
		},
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
}

// PurgeModule implements bulk message deletion.
type PurgeModule struct {
	config *config.Config
	opts   purgeOpts
}

// New creates a new purge module
func New(deps *types.Dependencies) *PurgeModule {
	return &PurgeModule{
		config: deps.Config,
		opts:   defaultPurgeOpts(),
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *PurgeModule) Service() types.ModuleService {
	return nil
}

// Register adds the purge command to the command map
func (m *PurgeModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var managePerms int64 = discordgo.PermissionManageMessages

	cmds["purge"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "purge",
			Description:              "Bulk delete recent messages in this channel",
			DefaultMemberPermissions: &managePerms,
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "Number of messages to delete (1-100)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Only delete messages from this user",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handlePurge,
	}
}

func (m *PurgeModule) handlePurge(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})

	var count int
	var onlyUserID string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "count":
			count = int(opt.IntValue())
		case "user":
			onlyUserID = opt.Value.(string)
		}
	}

	if count < 1 || count > 100 {
		m.edit(s, i, "❌ Count must be between 1 and 100.")
		return
	}

	messages, err := m.opts.FetchMessages(s, i.ChannelID, count)
	if err != nil {
		m.edit(s, i, fmt.Sprintf("❌ Failed to fetch messages: %v", err))
		return
	}

	ids := FilterMessageIDs(messages, onlyUserID)
	if len(ids) == 0 {
		m.edit(s, i, "Nothing to delete.")
		return
	}

	if err := m.opts.BulkDelete(s, i.ChannelID, ids); err != nil {
		m.edit(s, i, fmt.Sprintf("❌ Failed to delete messages: %v", err))
		return
	}

	_ = utils.LogToChannel(m.config, s, fmt.Sprintf("🧹 <@%s> purged %d message(s) in <#%s>", i.Member.User.ID, len(ids), i.ChannelID))
	m.edit(s, i, fmt.Sprintf("✅ Deleted %d message(s).", len(ids)))
}

// FilterMessageIDs returns the IDs of messages to delete, optionally
// restricted to a single author.
func FilterMessageIDs(messages []*discordgo.Message, onlyUserID string) []string {
	var ids []string
	for _, msg := range messages {
		if onlyUserID != "" && (msg.Author == nil || msg.Author.ID != onlyUserID) {
			continue
		}
		ids = append(ids, msg.ID)
	}
	return ids
}

func (m *PurgeModule) edit(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
}
