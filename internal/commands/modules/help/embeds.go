package help

import (
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// helpCommandsEmbed creates the main help embed showing all available commands
func helpCommandsEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🦗 Locust - Help",
		Description: "A multi-purpose community bot.",
		Color:       utils.Colors.Info(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🤖 Available Commands:",
				Inline: false,
			},
			{
				Name:   "/ping",
				Value:  "Check if the bot is responsive",
				Inline: false,
			},
			{
				Name:   "/info",
				Value:  "Show bot uptime and version",
				Inline: false,
			},
			{
				Name:   "/serverinfo",
				Value:  "Show information about this server",
				Inline: false,
			},
			{
				Name:   "/rank",
				Value:  "Show a member's level and XP\n• Use `/rank user:@member` to look up someone else",
				Inline: false,
			},
			{
				Name:   "/leaderboard",
				Value:  "Show the top members by XP",
				Inline: false,
			},
			{
				Name:   "/market",
				Value:  "Marketplace listings\n• `/market post title:Item price:10` to sell\n• `/market list` to browse\n• `/market remove id:1` to take down",
				Inline: false,
			},
			{
				Name:   "/chat",
				Value:  "Talk to the bot\n• `/chat-clear` forgets the conversation\n• `/ai-status` shows whether chat is available",
				Inline: false,
			},
			{
				Name:   "/urban",
				Value:  "Look up a term on Urban Dictionary\n• Use the ◀ ▶ buttons to page through definitions",
				Inline: false,
			},
			{
				Name:   "/roblox",
				Value:  "Look up a Roblox profile by username",
				Inline: false,
			},
			{
				Name:   "/time",
				Value:  "Convert a date/time to Discord timestamps\n• Use `/time datetime:tomorrow 5pm EST full:true` for all formats",
				Inline: false,
			},
			{
				Name:   "/lovecalc",
				Value:  "Calculate compatibility between two members",
				Inline: false,
			},
			{
				Name:   "/help",
				Value:  "Show this help message",
				Inline: false,
			},
			{
				Name:   "🛠️ Moderator Commands:",
				Inline: false,
			},
			{
				Name:   "/mute, /unmute",
				Value:  "Time out a member\n• Use `/mute user:@member duration:1h reason:Text`",
				Inline: false,
			},
			{
				Name:   "/kick, /ban, /unban",
				Value:  "Remove members\n• `/ban duration:7d` issues a temporary ban that lifts itself",
				Inline: false,
			},
			{
				Name:   "/warn, /warnings, /clearwarnings",
				Value:  "Track member warnings",
				Inline: false,
			},
			{
				Name:   "/purge",
				Value:  "Bulk-delete recent messages\n• Use `/purge count:20 user:@member` to filter by author",
				Inline: false,
			},
			{
				Name:   "/ticket close",
				Value:  "Close the current support ticket",
				Inline: false,
			},
			{
				Name:   "🚀 Admin Commands:",
				Inline: false,
			},
			{
				Name:   "/filter",
				Value:  "Manage the word filter\n• `/filter add kind:blacklist term:word`\n• `/filter remove`, `/filter list`",
				Inline: false,
			},
			{
				Name:   "/raid",
				Value:  "Anti-raid lockdown\n• `/raid on`, `/raid off`, `/raid status`",
				Inline: false,
			},
			{
				Name:   "/level",
				Value:  "Configure leveling\n• `/level set`, `/level config`, `/level reward`",
				Inline: false,
			},
			{
				Name:   "/ticket setup",
				Value:  "Post the ticket panel\n• Use `channel:#tickets types:Support,Report`",
				Inline: false,
			},
			{
				Name:   "/starboard",
				Value:  "Configure the starboard\n• `/starboard setup channel:#starboard threshold:3`",
				Inline: false,
			},
		},
	}
}
