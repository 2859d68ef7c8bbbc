package events

import (
	"fmt"
	"time"

	"locust/internal/antispam"
	"locust/internal/config"
	"locust/internal/filter"
	"locust/internal/leveling"
	"locust/internal/punish"

	"github.com/bwmarrin/discordgo"
)

// OnMessageCreate scans guild messages for spam and filtered language,
// then feeds the leveling service.
func OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, cfg *config.Config, spamSvc *antispam.Service, filterSvc *filter.Service, levelSvc *leveling.Service) {
	// Ignore messages from bots (including ourselves)
	if m.Author.Bot {
		return
	}
	if m.GuildID == "" {
		return
	}

	if spam, reason := spamSvc.CheckMessage(m.GuildID, m.Author.ID, m.Content); spam {
		handleSpam(s, m, cfg, filterSvc, reason)
		return
	}

	if hit, term := filterSvc.CheckMessage(m.GuildID, m.Content); hit {
		handleFilterHit(s, m, cfg, filterSvc, term)
		return
	}

	award, err := levelSvc.HandleMessage(m.GuildID, m.Author.ID, m.ChannelID)
	if err != nil {
		cfg.Logger.Errorf("Error awarding XP: %v", err)
		return
	}
	if award == nil {
		return
	}

	if award.AnnounceChannelID != "" {
		_, err := s.ChannelMessageSend(award.AnnounceChannelID,
			fmt.Sprintf("🎉 <@%s> reached level **%d**!", m.Author.ID, award.NewLevel))
		if err != nil {
			cfg.Logger.Errorf("Error announcing level up: %v", err)
		}
	}

	if award.RoleID != "" {
		if err := s.GuildMemberRoleAdd(m.GuildID, m.Author.ID, award.RoleID); err != nil {
			cfg.Logger.Errorf("Error granting level reward role: %v", err)
		}
	}
}

// handleSpam deletes the message and escalates through the same ladder
// as filter violations.
func handleSpam(s *discordgo.Session, m *discordgo.MessageCreate, cfg *config.Config, filterSvc *filter.Service, reason string) {
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		cfg.Logger.Errorf("Error deleting spam message: %v", err)
	}

	p := filterSvc.RecordViolation(m.GuildID, m.Author.ID)
	if p.Action == punish.ActionNone {
		_, _ = s.ChannelMessageSend(m.ChannelID,
			fmt.Sprintf("<@%s>, please don't spam.", m.Author.ID))
	} else {
		applyPunishment(s, m, cfg, p, "Spamming")
	}

	cfg.Logger.Infof("Spam in guild %s: user %s (%s), action %s", m.GuildID, m.Author.ID, reason, p.Action)
}

// handleFilterHit deletes the offending message and applies whatever
// the escalation ladder prescribes.
func handleFilterHit(s *discordgo.Session, m *discordgo.MessageCreate, cfg *config.Config, filterSvc *filter.Service, term string) {
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		cfg.Logger.Errorf("Error deleting filtered message: %v", err)
	}

	p := filterSvc.RecordViolation(m.GuildID, m.Author.ID)
	if p.Action == punish.ActionNone {
		_, _ = s.ChannelMessageSend(m.ChannelID,
			fmt.Sprintf("<@%s>, watch your language.", m.Author.ID))
	} else {
		applyPunishment(s, m, cfg, p, "Repeated filter violations")
	}

	cfg.Logger.Infof("Filter hit in guild %s: user %s matched %q, action %s", m.GuildID, m.Author.ID, term, p.Action)
}

// applyPunishment carries out a ladder action against the author.
func applyPunishment(s *discordgo.Session, m *discordgo.MessageCreate, cfg *config.Config, p punish.Punishment, reason string) {
	switch p.Action {
	case punish.ActionWarn:
		_, _ = s.ChannelMessageSend(m.ChannelID,
			fmt.Sprintf("⚠️ <@%s>, this is a warning. Reason: %s.", m.Author.ID, reason))
	case punish.ActionMute:
		until := time.Now().Add(time.Duration(p.Duration.Seconds()) * time.Second)
		if err := s.GuildMemberTimeout(m.GuildID, m.Author.ID, &until); err != nil {
			cfg.Logger.Errorf("Error muting offender: %v", err)
		}
	case punish.ActionKick:
		if err := s.GuildMemberDelete(m.GuildID, m.Author.ID); err != nil {
			cfg.Logger.Errorf("Error kicking offender: %v", err)
		}
	case punish.ActionBan:
		if err := s.GuildBanCreateWithReason(m.GuildID, m.Author.ID, reason, 0); err != nil {
			cfg.Logger.Errorf("Error banning offender: %v", err)
		}
	}
}
