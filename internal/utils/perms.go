package utils

import (
	"github.com/bwmarrin/discordgo"
)

// HasAdminPermissions checks if the user has administrator permissions
func HasAdminPermissions(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	return HasPermission(s, i, discordgo.PermissionAdministrator)
}

// HasPermission checks if the invoking member holds the given permission
// bit in the interaction channel.
func HasPermission(s *discordgo.Session, i *discordgo.InteractionCreate, perm int64) bool {
	if i.Member == nil || i.Member.User == nil {
		return false
	}

	permissions, err := s.UserChannelPermissions(i.Member.User.ID, i.ChannelID)
	if err != nil {
		return false
	}

	return permissions&perm != 0 || permissions&discordgo.PermissionAdministrator != 0
}

// HighestRolePosition returns the highest role position a member holds.
// Position 0 is @everyone; larger is higher.
func HighestRolePosition(s *discordgo.Session, guildID string, member *discordgo.Member) int {
	highest := 0
	for _, roleID := range member.Roles {
		role, err := s.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if role.Position > highest {
			highest = role.Position
		}
	}
	return highest
}

// OutranksTarget reports whether the invoker outranks the target member,
// which moderation commands require before acting on a user.
func OutranksTarget(s *discordgo.Session, guildID string, invoker, target *discordgo.Member) bool {
	if invoker == nil || target == nil {
		return false
	}

	guild, err := s.State.Guild(guildID)
	if err == nil && guild.OwnerID == invoker.User.ID {
		return true
	}

	return HighestRolePosition(s, guildID, invoker) > HighestRolePosition(s, guildID, target)
}
