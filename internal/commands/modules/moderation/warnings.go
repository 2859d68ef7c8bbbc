package moderation

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (m *ModerationModule) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	target, opts := m.resolveTarget(s, i)
	if target == nil {
		return
	}

	if m.db == nil {
		m.editEphemeral(s, i, "❌ Warning storage is unavailable.")
		return
	}

	count, err := m.db.AddWarning(i.GuildID, target.ID, i.Member.User.ID, opts["reason"])
	if err != nil {
		m.config.Logger.Errorf("Failed to add warning: %v", err)
		m.editEphemeral(s, i, "❌ Failed to record the warning.")
		return
	}

	_ = m.opts.SendDM(s, target.ID, fmt.Sprintf("⚠️ You have been warned: %s", opts["reason"]))

	m.logAction(s, i, "⚠️ User Warned", target, opts["reason"], "")
	m.editEphemeral(s, i, fmt.Sprintf("✅ Warned **%s**. They now have %d warning(s).", target.Username, count))
}

func (m *ModerationModule) handleWarnings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	target, _ := m.resolveWarningsTarget(s, i)
	if target == nil {
		return
	}

	if m.db == nil {
		m.editEphemeral(s, i, "❌ Warning storage is unavailable.")
		return
	}

	warnings, err := m.db.GetWarnings(i.GuildID, target.ID)
	if err != nil {
		m.config.Logger.Errorf("Failed to get warnings: %v", err)
		m.editEphemeral(s, i, "❌ Failed to look up warnings.")
		return
	}

	if len(warnings) == 0 {
		m.editEphemeral(s, i, fmt.Sprintf("**%s** has no warnings.", target.Username))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** has %d warning(s):\n", target.Username, len(warnings))
	for n, w := range warnings {
		if n >= 10 {
			fmt.Fprintf(&b, "…and %d more.", len(warnings)-n)
			break
		}
		fmt.Fprintf(&b, "%d. %s — by <@%s> on %s\n", n+1, w.Reason, w.ModeratorID, w.CreatedAt.Format("2006-01-02"))
	}

	m.editEphemeral(s, i, b.String())
}

func (m *ModerationModule) handleClearWarnings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	target, _ := m.resolveWarningsTarget(s, i)
	if target == nil {
		return
	}

	if m.db == nil {
		m.editEphemeral(s, i, "❌ Warning storage is unavailable.")
		return
	}

	removed, err := m.db.ClearWarnings(i.GuildID, target.ID)
	if err != nil {
		m.config.Logger.Errorf("Failed to clear warnings: %v", err)
		m.editEphemeral(s, i, "❌ Failed to clear warnings.")
		return
	}

	m.editEphemeral(s, i, fmt.Sprintf("✅ Cleared %d warning(s) for **%s**.", removed, target.Username))
}

// resolveWarningsTarget is resolveTarget without the hierarchy and
// self-moderation checks, which don't apply to read-only lookups.
func (m *ModerationModule) resolveWarningsTarget(s *discordgo.Session, i *discordgo.InteractionCreate) (*discordgo.User, map[string]string) {
	if i.Member == nil || i.Member.User == nil {
		m.editEphemeral(s, i, "❌ This command can only be used in a server.")
		return nil, nil
	}

	data := i.ApplicationCommandData()
	var targetID string
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionUser {
			targetID = opt.Value.(string)
		}
	}

	if targetID == "" || data.Resolved == nil || data.Resolved.Users[targetID] == nil {
		m.editEphemeral(s, i, "❌ Could not resolve the specified user.")
		return nil, nil
	}

	return data.Resolved.Users[targetID], nil
}
