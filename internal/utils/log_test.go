package utils

import (
	"testing"

	"locust/internal/config"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestLogModActionNoChannelConfigured(t *testing.T) {
	cfg := config.NewMockConfig(nil)

	// No channel set means nothing to send; nil session must be safe.
	err := LogModAction(cfg, nil, &discordgo.MessageEmbed{Title: "Ban"})
	assert.NoError(t, err)
}
