package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BHASHA_DATABASE_URL", "postgres://localhost:5432/bhasha_test")
	t.Setenv("BHASHA_SERVER_PORT", "9090")
	t.Setenv("BHASHA_SERVER_LOG_LEVEL", "debug")
	t.Setenv("BHASHA_SPEECH_GOOGLE_API_KEY", "test-google-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/bhasha_test", cfg.Database.URL)
	assert.Equal(t, "test-google-key", cfg.Speech.GoogleAPIKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BHASHA_DATABASE_URL", "postgres://localhost:5432/bhasha_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "default", cfg.Speech.Voice)
	assert.Equal(t, 256, cfg.Speech.CacheSize)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("BHASHA_DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Server:   ServerConfig{Port: 8080, LogLevel: "info"},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/bhasha"},
	}

	testCases := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"valid", func(cfg *Config) {}, false},
		{"port out of range", func(cfg *Config) { cfg.Server.Port = 70000 }, true},
		{"unknown log level", func(cfg *Config) { cfg.Server.LogLevel = "loud" }, true},
		{"missing database url", func(cfg *Config) { cfg.Database.URL = "" }, true},
		{"negative cache size", func(cfg *Config) { cfg.Speech.CacheSize = -1 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := *valid
			tc.mutate(&cfg)

			err := Validate(&cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
