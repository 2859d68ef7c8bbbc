package lovecalc

import (
	"fmt"
	"math/rand"
	"strconv"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// LoveCalcModule computes a compatibility score for two members.
type LoveCalcModule struct {
	config *config.Config
}

// New creates a new lovecalc module
func New(deps *types.Dependencies) *LoveCalcModule {
	return &LoveCalcModule{
		config: deps.Config,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *LoveCalcModule) Service() types.ModuleService {
	return nil
}

// Register adds the lovecalc command to the command map
func (m *LoveCalcModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["lovecalc"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "lovecalc",
			Description: "Calculate compatibility between two members",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "first",
					Description: "First member",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "second",
					Description: "Second member (defaults to you)",
					Required:    false,
				},
			},
		},
		HandlerFunc: m.handleLoveCalc,
	}
}

// Score computes a stable compatibility score for a pair of user IDs.
// The same pair always scores the same, regardless of argument order.
func Score(firstID, secondID string) int {
	a, _ := strconv.ParseUint(firstID, 10, 64)
	b, _ := strconv.ParseUint(secondID, 10, 64)

	seed := int64((a + b) % 1000)
	rng := rand.New(rand.NewSource(seed))
	return 50 + rng.Intn(51)
}

func (m *LoveCalcModule) handleLoveCalc(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var first, second *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "first":
			first = opt.UserValue(s)
		case "second":
			second = opt.UserValue(s)
		}
	}
	if first == nil {
		return
	}
	if second == nil {
		if i.Member != nil {
			second = i.Member.User
		} else {
			second = i.User
		}
	}

	score := Score(first.ID, second.ID)

	embed := utils.NewEmbed()
	embed.Title = "💘 Love Calculator"
	embed.Color = utils.Colors.Fancy()
	embed.Description = fmt.Sprintf("<@%s> ❤️ <@%s>\n\n**%d%%** — %s", first.ID, second.ID, score, verdict(score))

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func verdict(score int) string {
	switch {
	case score >= 90:
		return "A match made in heaven!"
	case score >= 75:
		return "Looking very promising."
	case score >= 60:
		return "There's something there."
	default:
		return "Maybe just friends."
	}
}
