package moderation

import (
	"fmt"
	"time"

	"locust/internal/duration"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const defaultMuteSeconds = 600 // 10 minutes

// resolveDuration interprets the duration option: compact notation
// first, then an absolute date/time phrase. Returns the span in seconds.
func resolveDuration(input string) (int64, bool) {
	if d, ok := duration.Parse(input); ok {
		return d.Seconds(), true
	}

	ts, err := utils.ParseUnixTimestamp(input)
	if err != nil {
		return 0, false
	}
	secs := ts - time.Now().Unix()
	if secs <= 0 {
		return 0, false
	}
	return secs, true
}

func (m *ModerationModule) handleMute(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	target, opts := m.resolveTarget(s, i)
	if target == nil {
		return
	}

	var secs int64 = defaultMuteSeconds
	if raw := opts["duration"]; raw != "" {
		parsed, ok := resolveDuration(raw)
		if !ok {
			m.editEphemeral(s, i, fmt.Sprintf("❌ Could not interpret %q as a duration. Try something like `30m` or `1d 2h`.", raw))
			return
		}
		secs = parsed
	}

	// Discord caps timeouts at 28 days
	const maxTimeout = 28 * 86400
	if secs > maxTimeout {
		secs = maxTimeout
	}

	until := time.Now().Add(time.Duration(secs) * time.Second)
	if err := m.opts.Timeout(s, i.GuildID, target.ID, &until); err != nil {
		m.editEphemeral(s, i, fmt.Sprintf("❌ Failed to mute user: %v", err))
		return
	}

	d := duration.Duration(secs)
	reason := displayReason(opts["reason"])
	m.logAction(s, i, "🔇 User Muted", target, reason, d.String())
	m.editEphemeral(s, i, fmt.Sprintf("✅ Muted **%s** for %s. Reason: %s", target.Username, d.String(), reason))
}

func (m *ModerationModule) handleUnmute(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	target, opts := m.resolveTarget(s, i)
	if target == nil {
		return
	}

	if err := m.opts.Timeout(s, i.GuildID, target.ID, nil); err != nil {
		m.editEphemeral(s, i, fmt.Sprintf("❌ Failed to unmute user: %v", err))
		return
	}

	reason := displayReason(opts["reason"])
	m.logAction(s, i, "🔊 User Unmuted", target, reason, "")
	m.editEphemeral(s, i, fmt.Sprintf("✅ Unmuted **%s**.", target.Username))
}

func (m *ModerationModule) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	target, opts := m.resolveTarget(s, i)
	if target == nil {
		return
	}

	reason := displayReason(opts["reason"])
	if err := m.opts.Kick(s, i.GuildID, target.ID, opts["reason"]); err != nil {
		m.editEphemeral(s, i, fmt.Sprintf("❌ Failed to kick user: %v", err))
		return
	}

	m.logAction(s, i, "👢 User Kicked", target, reason, "")
	m.editEphemeral(s, i, fmt.Sprintf("✅ Kicked **%s**. Reason: %s", target.Username, reason))
}

func (m *ModerationModule) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	target, opts := m.resolveTarget(s, i)
	if target == nil {
		return
	}

	// A nil duration is a permanent ban.
	var banLength *duration.Duration
	if raw := opts["duration"]; raw != "" {
		secs, ok := resolveDuration(raw)
		if !ok {
			m.editEphemeral(s, i, fmt.Sprintf("❌ Could not interpret %q as a duration. Try something like `7d`, or omit it for a permanent ban.", raw))
			return
		}
		d := duration.Duration(secs)
		banLength = &d
	}

	days := m.intOption(i, "delete-days")
	if days < 0 || days > 7 {
		m.editEphemeral(s, i, "❌ delete-days must be between 0 and 7.")
		return
	}

	// DM the user before banning (can't DM after they leave the guild)
	_ = m.opts.SendDM(s, target.ID, banDMMessage)

	if err := m.opts.CreateBan(s, i.GuildID, target.ID, opts["reason"], days); err != nil {
		m.editEphemeral(s, i, fmt.Sprintf("❌ Failed to ban user: %v", err))
		return
	}

	if banLength != nil && m.db != nil {
		expiresAt := time.Now().Unix() + banLength.Seconds()
		if err := m.db.AddTempBan(i.GuildID, target.ID, opts["reason"], expiresAt); err != nil {
			m.config.Logger.Errorf("Failed to record temp ban for %s: %v", target.ID, err)
		}
	}

	reason := displayReason(opts["reason"])
	m.logAction(s, i, "🔨 User Banned", target, reason, duration.Format(banLength))
	m.editEphemeral(s, i, fmt.Sprintf("✅ Banned **%s** (%s). Duration: %s. Reason: %s", target.Username, target.ID, duration.Format(banLength), reason))
}

func (m *ModerationModule) handleUnban(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.deferEphemeral(s, i)

	userID := m.stringOption(i, "user-id")
	if userID == "" {
		m.editEphemeral(s, i, "❌ No user ID specified.")
		return
	}

	if err := m.opts.RemoveBan(s, i.GuildID, userID); err != nil {
		m.editEphemeral(s, i, fmt.Sprintf("❌ Failed to unban user: %v", err))
		return
	}

	if m.db != nil {
		if err := m.db.RemoveTempBan(i.GuildID, userID); err != nil {
			m.config.Logger.Errorf("Failed to remove temp ban record for %s: %v", userID, err)
		}
	}

	m.editEphemeral(s, i, fmt.Sprintf("✅ Unbanned <@%s>.", userID))
}

// resolveTarget extracts and validates the "user" option. On failure it
// edits the response and returns nil.
func (m *ModerationModule) resolveTarget(s *discordgo.Session, i *discordgo.InteractionCreate) (*discordgo.User, map[string]string) {
	if i.Member == nil || i.Member.User == nil {
		m.editEphemeral(s, i, "❌ This command can only be used in a server.")
		return nil, nil
	}

	data := i.ApplicationCommandData()
	opts := make(map[string]string)
	var targetID string
	for _, opt := range data.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionUser:
			targetID = opt.Value.(string)
		case discordgo.ApplicationCommandOptionString:
			opts[opt.Name] = opt.StringValue()
		}
	}

	if targetID == "" {
		m.editEphemeral(s, i, "❌ No user specified.")
		return nil, nil
	}

	if data.Resolved == nil || data.Resolved.Users[targetID] == nil {
		m.editEphemeral(s, i, "❌ Could not resolve the specified user.")
		return nil, nil
	}
	target := data.Resolved.Users[targetID]

	if target.ID == i.Member.User.ID {
		m.editEphemeral(s, i, "❌ You cannot moderate yourself.")
		return nil, nil
	}
	if s.State != nil && s.State.User != nil && target.ID == s.State.User.ID {
		m.editEphemeral(s, i, "❌ I cannot moderate myself.")
		return nil, nil
	}

	// Role hierarchy: the invoker must outrank the target when the
	// target is still a guild member.
	if data.Resolved.Members != nil {
		if targetMember := data.Resolved.Members[targetID]; targetMember != nil {
			targetMember.User = target
			if !utils.OutranksTarget(s, i.GuildID, i.Member, targetMember) {
				m.editEphemeral(s, i, "❌ You cannot moderate someone with a higher or equal role.")
				return nil, nil
			}
		}
	}

	return target, opts
}

func (m *ModerationModule) stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func (m *ModerationModule) intOption(i *discordgo.InteractionCreate, name string) int {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return int(opt.IntValue())
		}
	}
	return 0
}

func displayReason(reason string) string {
	if reason == "" {
		return "No reason provided"
	}
	return reason
}

func (m *ModerationModule) logAction(s *discordgo.Session, i *discordgo.InteractionCreate, title string, target *discordgo.User, reason, durationText string) {
	fields := []*discordgo.MessageEmbedField{
		{Name: "User", Value: fmt.Sprintf("<@%s> (%s)", target.ID, target.ID), Inline: true},
		{Name: "Moderator", Value: fmt.Sprintf("<@%s>", i.Member.User.ID), Inline: true},
		{Name: "Reason", Value: reason, Inline: false},
	}
	if durationText != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Duration", Value: durationText, Inline: true})
	}

	embed := &discordgo.MessageEmbed{
		Title:     title,
		Color:     utils.Colors.Error(),
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	_ = m.opts.LogModAction(m.config, s, embed)
}

func (m *ModerationModule) deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func (m *ModerationModule) editEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
}
