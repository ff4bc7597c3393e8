package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://simcar.kro.kr/api", c.ServerBaseURL)
	assert.Equal(t, "https://simcar.kro.kr", c.ImageOrigin)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "simcar.db", c.DatabaseDSN)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://simcar.kro.kr/api", cfg.ServerBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
