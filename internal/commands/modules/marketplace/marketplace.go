package marketplace

import (
	"fmt"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// maxListingsPerUser caps how many listings a member can hold at once.
const maxListingsPerUser = 5

// MarketplaceModule lets members post and browse sale listings.
type MarketplaceModule struct {
	config *config.Config
	db     *database.DB
}

// New creates a new marketplace module
func New(deps *types.Dependencies) *MarketplaceModule {
	return &MarketplaceModule{
		config: deps.Config,
		db:     deps.DB,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *MarketplaceModule) Service() types.ModuleService {
	return nil
}

// Register adds the market command to the command map
func (m *MarketplaceModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["market"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "market",
			Description: "Browse and post marketplace listings",
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
			},
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "post",
					Description: "Post a listing",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "title",
							Description: "What you're selling",
							Required:    true,
							MaxLength:   100,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "price",
							Description: "Asking price",
							Required:    true,
							MaxLength:   50,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "description",
							Description: "Details about the listing",
							Required:    false,
							MaxLength:   500,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show current listings",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove one of your listings",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Listing ID",
							Required:    true,
							MinValue:    utils.Float64Ptr(1),
						},
					},
				},
			},
		},
		HandlerFunc: m.handleMarket,
	}
}

func (m *MarketplaceModule) handleMarket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "post":
		m.handlePost(s, i, sub.Options)
	case "list":
		m.handleList(s, i)
	case "remove":
		m.handleRemove(s, i, sub.Options)
	}
}

func (m *MarketplaceModule) handlePost(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	userID := i.Member.User.ID

	count, err := m.db.CountUserListings(i.GuildID, userID)
	if err != nil {
		m.config.Logger.Error("failed to count listings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to post the listing.")
		return
	}
	if count >= maxListingsPerUser {
		_ = utils.RespondEphemeral(s, i, fmt.Sprintf("❌ You already have %d listings. Remove one first.", count))
		return
	}

	var title, price, description string
	for _, opt := range opts {
		switch opt.Name {
		case "title":
			title = opt.StringValue()
		case "price":
			price = opt.StringValue()
		case "description":
			description = opt.StringValue()
		}
	}

	id, err := m.db.CreateListing(i.GuildID, userID, title, price, description)
	if err != nil {
		m.config.Logger.Error("failed to create listing", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to post the listing.")
		return
	}

	embed := utils.NewOKEmbed("🛒 Listing posted",
		fmt.Sprintf("**#%d — %s**\nPrice: %s", id, title, price))
	if description != "" {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Details", Value: description},
		}
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (m *MarketplaceModule) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	listings, err := m.db.GetListings(i.GuildID, 15)
	if err != nil {
		m.config.Logger.Error("failed to load listings", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to load listings.")
		return
	}
	if len(listings) == 0 {
		_ = utils.RespondEphemeral(s, i, "There are no listings yet. Post one with `/market post`.")
		return
	}

	embed := utils.NewEmbed()
	embed.Title = "🛒 Marketplace"
	embed.Color = utils.Colors.Info()
	for _, l := range listings {
		value := fmt.Sprintf("Price: %s — seller <@%s>", l.Price, l.UserID)
		if l.Description != "" {
			value += "\n" + l.Description
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d — %s", l.ID, l.Title),
			Value: value,
		})
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (m *MarketplaceModule) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var id int
	for _, opt := range opts {
		if opt.Name == "id" {
			id = int(opt.IntValue())
		}
	}

	listing, err := m.db.GetListing(i.GuildID, id)
	if err != nil {
		m.config.Logger.Error("failed to load listing", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to remove the listing.")
		return
	}
	if listing == nil {
		_ = utils.RespondEphemeral(s, i, fmt.Sprintf("❌ Listing #%d does not exist.", id))
		return
	}

	// Sellers can remove their own listings; admins can remove any.
	if listing.UserID != i.Member.User.ID && !utils.HasAdminPermissions(s, i) {
		_ = utils.RespondEphemeral(s, i, "❌ You can only remove your own listings.")
		return
	}

	removed, err := m.db.DeleteListing(i.GuildID, id)
	if err != nil || !removed {
		m.config.Logger.Error("failed to delete listing", "error", err)
		_ = utils.RespondEphemeral(s, i, "❌ Failed to remove the listing.")
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf("✅ Removed listing #%d — %s.", id, listing.Title))
}
