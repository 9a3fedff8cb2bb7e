package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "channelchat", cfg.Database.Database)
	assert.Equal(t, "channel-chat-images", cfg.Storage.Bucket)
	assert.Equal(t, "chatImages", cfg.Storage.KeyPrefix)
	assert.Equal(t, []string{"Arts", "Crafts", "Food", "Gatherings", "Outdoors"}, cfg.Chat.Channels)
	assert.Equal(t, "Food", cfg.Chat.DefaultChannel)
	assert.True(t, cfg.Chat.UseRemote)
	assert.True(t, cfg.Chat.SeedLocal)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DATABASE_HOSTS", "db1:27017,db2:27017")
	t.Setenv("CHAT_CHANNELS", "General,Random")
	t.Setenv("CHAT_DEFAULT_CHANNEL", "General")
	t.Setenv("CHAT_USE_REMOTE", "false")
	t.Setenv("STORAGE_PUBLIC_BASE_URL", "https://cdn.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Addr())
	assert.Equal(t, []string{"db1:27017", "db2:27017"}, cfg.Database.Hosts)
	assert.Equal(t, []string{"General", "Random"}, cfg.Chat.Channels)
	assert.Equal(t, "General", cfg.Chat.DefaultChannel)
	assert.False(t, cfg.Chat.UseRemote)
	assert.Equal(t, "https://cdn.example.com", cfg.Storage.PublicBaseURL)
}
