package urban

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const componentPrefix = "urban"

const defaultAPIURL = "https://api.urbandictionary.com/v0/define"

// maxDefinitions caps how many results a lookup will page through.
const maxDefinitions = 10

// Definition is a single urban dictionary entry.
type Definition struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Author     string `json:"author"`
	ThumbsUp   int    `json:"thumbs_up"`
	ThumbsDown int    `json:"thumbs_down"`
	Permalink  string `json:"permalink"`
}

type defineResponse struct {
	List []Definition `json:"list"`
}

// UrbanModule looks up slang definitions with paginated results.
type UrbanModule struct {
	config *config.Config
	client *http.Client
	apiURL string
}

// New creates a new urban module
func New(deps *types.Dependencies) *UrbanModule {
	return &UrbanModule{
		config: deps.Config,
		client: &http.Client{Timeout: 10 * time.Second},
		apiURL: defaultAPIURL,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *UrbanModule) Service() types.ModuleService {
	return nil
}

// ComponentPrefix returns the custom ID prefix for pagination buttons
func (m *UrbanModule) ComponentPrefix() string {
	return componentPrefix
}

// Register adds the urban command to the command map
func (m *UrbanModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["urban"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "urban",
			Description: "Look up a term on Urban Dictionary",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "term",
					Description: "Term to look up",
					Required:    true,
					MaxLength:   80,
				},
			},
		},
		HandlerFunc: m.handleUrban,
	}
}

// Lookup fetches definitions for a term, capped at maxDefinitions.
func (m *UrbanModule) Lookup(term string) ([]Definition, error) {
	reqURL := fmt.Sprintf("%s?term=%s", m.apiURL, url.QueryEscape(term))

	resp, err := m.client.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query urban dictionary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("urban dictionary returned status %d", resp.StatusCode)
	}

	var parsed defineResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode urban dictionary response: %w", err)
	}

	if len(parsed.List) > maxDefinitions {
		parsed.List = parsed.List[:maxDefinitions]
	}
	return parsed.List, nil
}

func (m *UrbanModule) handleUrban(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var term string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "term" {
			term = opt.StringValue()
		}
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		m.config.Logger.Error("failed to defer urban response", "error", err)
		return
	}

	defs, err := m.Lookup(term)
	if err != nil {
		m.config.Logger.Error("urban lookup failed", "error", err)
		_ = utils.EditResponse(s, i, "❌ Failed to reach Urban Dictionary.")
		return
	}
	if len(defs) == 0 {
		_ = utils.EditResponse(s, i, fmt.Sprintf("No definitions found for **%s**.", term))
		return
	}

	embed := buildDefinitionEmbed(defs[0], 0, len(defs))
	components := pageButtons(term, 0, len(defs))
	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

// HandleComponent pages through the definitions of a prior lookup. The
// term and target page ride in the button's custom ID, so pagination
// holds no server-side state.
func (m *UrbanModule) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	parts := strings.SplitN(i.MessageComponentData().CustomID, ":", 4)
	if len(parts) != 4 || parts[1] != "page" {
		return
	}
	page, err := strconv.Atoi(parts[2])
	if err != nil {
		return
	}
	term := parts[3]

	defs, err := m.Lookup(term)
	if err != nil || len(defs) == 0 {
		m.config.Logger.Error("urban lookup failed on pagination", "error", err)
		return
	}
	if page < 0 || page >= len(defs) {
		page = 0
	}

	embed := buildDefinitionEmbed(defs[page], page, len(defs))
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: pageButtons(term, page, len(defs)),
		},
	})
}

// HandleModalSubmit is a no-op; urban uses buttons only.
func (m *UrbanModule) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {}

func buildDefinitionEmbed(def Definition, page, total int) *discordgo.MessageEmbed {
	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("📖 %s", def.Word)
	embed.URL = def.Permalink
	embed.Color = utils.Colors.Info()
	embed.Description = truncate(def.Definition, 2048)
	if def.Example != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Example",
			Value: truncate(def.Example, 1024),
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d/%d • 👍 %d 👎 %d • by %s", page+1, total, def.ThumbsUp, def.ThumbsDown, def.Author),
	}
	return embed
}

func pageButtons(term string, page, total int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "◀",
				Style:    discordgo.SecondaryButton,
				CustomID: fmt.Sprintf("%s:page:%d:%s", componentPrefix, page-1, term),
				Disabled: page == 0,
			},
			discordgo.Button{
				Label:    "▶",
				Style:    discordgo.SecondaryButton,
				CustomID: fmt.Sprintf("%s:page:%d:%s", componentPrefix, page+1, term),
				Disabled: page >= total-1,
			},
		}},
	}
}

// truncate shortens s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
