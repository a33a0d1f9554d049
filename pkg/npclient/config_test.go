package npclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "FT_SharedMem", cfg.MappingName)
	assert.Equal(t, "FT_Mutext", cfg.MutexName)
	assert.Equal(t, -1, cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.NoError(t, VerifyConfig(cfg))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("NPCLIENT_SHM_NAME", "TR_SharedMem")
	t.Setenv("NPCLIENT_LOG_LEVEL", "1")
	t.Setenv("NPCLIENT_LOG_FILE", "/tmp/npclient.log")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "TR_SharedMem", cfg.MappingName)
	assert.Equal(t, "FT_Mutext", cfg.MutexName)
	assert.Equal(t, 1, cfg.LogLevel)
	assert.Equal(t, "/tmp/npclient.log", cfg.LogFile)
}

func TestLoadConfigRejects(t *testing.T) {
	t.Setenv("NPCLIENT_LOG_LEVEL", "loud")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("NPCLIENT_LOG_LEVEL", "9")
	_, err = LoadConfig()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestVerifyConfig(t *testing.T) {
	assert.ErrorIs(t, VerifyConfig(nil), ErrInvalidConfig)

	for _, mutate := range []func(*Config){
		func(c *Config) { c.MappingName = "" },
		func(c *Config) { c.MappingName = "../etc" },
		func(c *Config) { c.MutexName = `Global\FT` },
		func(c *Config) { c.LogLevel = -2 },
		func(c *Config) { c.LogLevel = 6 },
	} {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.ErrorIs(t, VerifyConfig(cfg), ErrInvalidConfig, "%+v", cfg)
	}

	cfg := DefaultConfig()
	cfg.MutexName = ""
	assert.NoError(t, VerifyConfig(cfg))
}
