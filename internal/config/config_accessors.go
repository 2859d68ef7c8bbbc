package config

func (c *Config) GetBotToken() string {
	return c.v.GetString("bot_token")
}

func (c *Config) GetDatabasePath() string {
	return c.v.GetString("database_path")
}

func (c *Config) GetAIAPIKey() string {
	return c.v.GetString("ai_api_key")
}

func (c *Config) GetAIEndpoint() string {
	return c.v.GetString("ai_endpoint")
}

func (c *Config) GetAIModel() string {
	return c.v.GetString("ai_model")
}

// Channel receiving moderation action embeds (bans, mutes, warns).
func (c *Config) GetModActionLogChannelID() string {
	return c.v.GetString("mod_action_log_channel_id")
}

// Channel receiving operational bot messages.
func (c *Config) GetBotLogChannelID() string {
	return c.v.GetString("bot_log_channel_id")
}

// Anti-raid sensitivity: 1 (low) through 3 (high).
func (c *Config) GetRaidSensitivity() int {
	return c.v.GetInt("raid_sensitivity")
}
