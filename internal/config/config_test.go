package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigRequiresToken(t *testing.T) {
	t.Setenv("LOCUST_BOT_TOKEN", "")
	t.Setenv("LOCUST_LOG_DIR", t.TempDir())

	_, err := NewConfig()
	require.Error(t, err)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("LOCUST_BOT_TOKEN", "test_token")
	t.Setenv("LOCUST_LOG_DIR", t.TempDir())
	t.Setenv("LOCUST_AI_API_KEY", "test_key")
	t.Setenv("LOCUST_MOD_ACTION_LOG_CHANNEL_ID", "12345")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "test_token", cfg.GetBotToken())
	assert.Equal(t, "test_key", cfg.GetAIAPIKey())
	assert.Equal(t, "12345", cfg.GetModActionLogChannelID())

	// Defaults
	assert.Equal(t, "./locust.db", cfg.GetDatabasePath())
	assert.Equal(t, 1, cfg.GetRaidSensitivity())
	assert.NotEmpty(t, cfg.GetAIEndpoint())
	assert.NotEmpty(t, cfg.GetAIModel())
}

func TestNewMockConfig(t *testing.T) {
	cfg := NewMockConfig(map[string]interface{}{
		"bot_log_channel_id": "log-chan",
	})

	assert.Equal(t, "log-chan", cfg.GetBotLogChannelID())
	assert.NotNil(t, cfg.Logger)
}
