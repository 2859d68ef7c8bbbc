package filter

import (
	"fmt"
	"strings"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// FilterModule manages the per-guild content filter term lists.
type FilterModule struct {
	config *config.Config
	db     *database.DB
}

// New creates a new filter module
func New(deps *types.Dependencies) *FilterModule {
	return &FilterModule{
		config: deps.Config,
		db:     deps.DB,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *FilterModule) Service() types.ModuleService {
	return nil
}

// Register adds the filter command to the command map
func (m *FilterModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	var managePerms int64 = discordgo.PermissionManageMessages

	listChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "blacklist", Value: database.FilterBlacklist},
		{Name: "whitelist", Value: database.FilterWhitelist},
	}

	cmds["filter"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:                     "filter",
			Description:              "Manage the content filter",
			DefaultMemberPermissions: &managePerms,
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a term to a filter list",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "term",
							Description: "The term to add",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "list",
							Description: "Which list to add to",
							Required:    true,
							Choices:     listChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a term from a filter list",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "term",
							Description: "The term to remove",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "list",
							Description: "Which list to remove from",
							Required:    true,
							Choices:     listChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show the filter lists",
				},
			},
		},
		HandlerFunc: m.handleFilter,
	}
}

func (m *FilterModule) handleFilter(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if m.db == nil {
		_ = utils.RespondEphemeral(s, i, "❌ Filter storage is unavailable.")
		return
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "add":
		m.handleAdd(s, i, sub)
	case "remove":
		m.handleRemove(s, i, sub)
	case "list":
		m.handleList(s, i)
	}
}

func (m *FilterModule) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	term, kind := subOptions(sub)
	if term == "" {
		_ = utils.RespondEphemeral(s, i, "❌ No term specified.")
		return
	}

	if err := m.db.AddFilterTerm(i.GuildID, strings.ToLower(term), kind); err != nil {
		m.config.Logger.Errorf("Failed to add filter term: %v", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to add the term.")
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf("✅ Added `%s` to the %s.", term, kind))
}

func (m *FilterModule) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	term, kind := subOptions(sub)

	removed, err := m.db.RemoveFilterTerm(i.GuildID, strings.ToLower(term), kind)
	if err != nil {
		m.config.Logger.Errorf("Failed to remove filter term: %v", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to remove the term.")
		return
	}
	if !removed {
		_ = utils.RespondEphemeral(s, i, fmt.Sprintf("`%s` is not on the %s.", term, kind))
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf("✅ Removed `%s` from the %s.", term, kind))
}

func (m *FilterModule) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	blacklist, err := m.db.GetFilterTerms(i.GuildID, database.FilterBlacklist)
	if err != nil {
		_ = utils.RespondEphemeral(s, i, "❌ Failed to load the filter lists.")
		return
	}
	whitelist, err := m.db.GetFilterTerms(i.GuildID, database.FilterWhitelist)
	if err != nil {
		_ = utils.RespondEphemeral(s, i, "❌ Failed to load the filter lists.")
		return
	}

	embed := utils.NewEmbed()
	embed.Title = "Content Filter"
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Blacklist", Value: formatTerms(blacklist), Inline: false},
		{Name: "Whitelist", Value: formatTerms(whitelist), Inline: false},
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func subOptions(sub *discordgo.ApplicationCommandInteractionDataOption) (term, kind string) {
	kind = database.FilterBlacklist
	for _, opt := range sub.Options {
		switch opt.Name {
		case "term":
			term = opt.StringValue()
		case "list":
			kind = opt.StringValue()
		}
	}
	return term, kind
}

func formatTerms(terms []string) string {
	if len(terms) == 0 {
		return "_empty_"
	}
	return "`" + strings.Join(terms, "`, `") + "`"
}
