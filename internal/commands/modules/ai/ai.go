package ai

import (
	"fmt"
	"unicode/utf8"

	aiclient "locust/internal/ai"
	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// AIModule exposes conversational chat backed by a hosted model.
type AIModule struct {
	config *config.Config
	client *aiclient.Client
}

// New creates a new AI module
func New(deps *types.Dependencies) *AIModule {
	return &AIModule{
		config: deps.Config,
		client: deps.AI,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *AIModule) Service() types.ModuleService {
	return nil
}

// Register adds the chat commands to the command map
func (m *AIModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["chat"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "chat",
			Description: "Talk to the bot",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prompt",
					Description: "What to say",
					Required:    true,
					MaxLength:   1000,
				},
			},
		},
		HandlerFunc: m.handleChat,
	}

	cmds["chat-clear"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "chat-clear",
			Description: "Forget the conversation in this channel",
		},
		HandlerFunc: m.handleChatClear,
	}

	cmds["ai-status"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "ai-status",
			Description: "Show AI chat status",
		},
		HandlerFunc: m.handleStatus,
	}
}

func (m *AIModule) handleChat(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !m.client.Enabled() {
		_ = utils.RespondEphemeral(s, i, "❌ AI chat is not configured.")
		return
	}

	var prompt string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "prompt" {
			prompt = opt.StringValue()
		}
	}

	// Model calls routinely exceed the 3-second interaction deadline.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		m.config.Logger.Error("failed to defer chat response", "error", err)
		return
	}

	reply, err := m.client.Chat(i.ChannelID, prompt)
	if err != nil {
		m.config.Logger.Error("chat completion failed", "error", err)
		_ = utils.EditResponse(s, i, "❌ Something went wrong talking to the model.")
		return
	}

	_ = utils.EditResponse(s, i, trimToMessageLimit(reply))
}

// trimToMessageLimit fits a reply into Discord's 2000-character message
// cap without splitting a rune.
func trimToMessageLimit(reply string) string {
	if len(reply) <= 2000 {
		return reply
	}
	cut := 1997
	for cut > 0 && !utf8.RuneStart(reply[cut]) {
		cut--
	}
	return reply[:cut] + "..."
}

func (m *AIModule) handleChatClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if m.client.ClearConversation(i.ChannelID) {
		_ = utils.RespondEphemeral(s, i, "🧹 Conversation forgotten.")
		return
	}
	_ = utils.RespondEphemeral(s, i, "There is no active conversation in this channel.")
}

func (m *AIModule) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !m.client.Enabled() {
		_ = utils.RespondEphemeral(s, i, "AI chat is **disabled** (no API key configured).")
		return
	}

	_ = utils.RespondEphemeral(s, i, fmt.Sprintf(
		"AI chat is **enabled** using `%s` with %d active conversations.",
		m.config.GetAIModel(), m.client.ActiveConversations(),
	))
}
