package roblox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	defaultUsersAPIURL      = "https://users.roblox.com/v1/usernames/users"
	defaultThumbnailsAPIURL = "https://thumbnails.roblox.com/v1/users/avatar-headshot"
)

// User is a Roblox account resolved from a username.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type usernamesRequest struct {
	Usernames          []string `json:"usernames"`
	ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
}

type usernamesResponse struct {
	Data []User `json:"data"`
}

type thumbnailsResponse struct {
	Data []struct {
		TargetID int64  `json:"targetId"`
		ImageURL string `json:"imageUrl"`
	} `json:"data"`
}

// RobloxModule resolves Roblox usernames to profiles.
type RobloxModule struct {
	config        *config.Config
	client        *http.Client
	usersAPI      string
	thumbnailsAPI string
}

// New creates a new roblox module
func New(deps *types.Dependencies) *RobloxModule {
	return &RobloxModule{
		config:        deps.Config,
		client:        &http.Client{Timeout: 10 * time.Second},
		usersAPI:      defaultUsersAPIURL,
		thumbnailsAPI: defaultThumbnailsAPIURL,
	}
}

// Service returns nil as this module has no services requiring initialization
func (m *RobloxModule) Service() types.ModuleService {
	return nil
}

// Register adds the roblox command to the command map
func (m *RobloxModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["roblox"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "roblox",
			Description: "Look up a Roblox profile",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "username",
					Description: "Roblox username",
					Required:    true,
					MaxLength:   50,
				},
			},
		},
		HandlerFunc: m.handleRoblox,
	}
}

// LookupUser resolves a username to a Roblox account, or nil when no
// account matches.
func (m *RobloxModule) LookupUser(username string) (*User, error) {
	payload, err := json.Marshal(usernamesRequest{
		Usernames:          []string{username},
		ExcludeBannedUsers: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := m.client.Post(m.usersAPI, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to query roblox users API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roblox users API returned status %d", resp.StatusCode)
	}

	var parsed usernamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode roblox users response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, nil
	}
	return &parsed.Data[0], nil
}

// AvatarURL fetches the headshot thumbnail for a user. A missing
// thumbnail is not an error; it returns an empty string.
func (m *RobloxModule) AvatarURL(userID int64) (string, error) {
	reqURL := fmt.Sprintf("%s?userIds=%d&size=150x150&format=Png", m.thumbnailsAPI, userID)

	resp, err := m.client.Get(reqURL)
	if err != nil {
		return "", fmt.Errorf("failed to query roblox thumbnails API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("roblox thumbnails API returned status %d", resp.StatusCode)
	}

	var parsed thumbnailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode roblox thumbnails response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return "", nil
	}
	return parsed.Data[0].ImageURL, nil
}

func (m *RobloxModule) handleRoblox(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var username string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "username" {
			username = opt.StringValue()
		}
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		m.config.Logger.Error("failed to defer roblox response", "error", err)
		return
	}

	user, err := m.LookupUser(username)
	if err != nil {
		m.config.Logger.Error("roblox lookup failed", "error", err)
		_ = utils.EditResponse(s, i, "❌ Failed to reach the Roblox API.")
		return
	}
	if user == nil {
		_ = utils.EditResponse(s, i, fmt.Sprintf("No Roblox account found for **%s**.", username))
		return
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("%s (@%s)", user.DisplayName, user.Name)
	embed.URL = fmt.Sprintf("https://www.roblox.com/users/%d/profile", user.ID)
	embed.Color = utils.Colors.Info()
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "User ID", Value: fmt.Sprintf("%d", user.ID), Inline: true},
	}

	if avatar, err := m.AvatarURL(user.ID); err == nil && avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	}

	_, _ = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}
