package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"nostrsky/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, cfg map[string]any) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func validConfigMap() map[string]any {
	return map[string]any{
		"nostr": map[string]any{
			"relay_url":  "wss://relay.damus.io",
			"public_key": "npub1example",
		},
		"bluesky": map[string]any{
			"identifier": "alice.bsky.social",
		},
		"database": map[string]any{
			"path": "/var/lib/nostrsky/state.db",
		},
	}
}

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NOSTR_RELAY_URL", "NOSTR_PUBLIC_KEY", "BLUESKY_PDS_URL", "BLUESKY_IDENTIFIER", "DB_PATH"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigValid(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv("BLUESKY_APP_PASSWORD", "app-pass-1234")

	path := writeConfig(t, validConfigMap())
	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "wss://relay.damus.io", cfg.Nostr.RelayURL)
	assert.Equal(t, "npub1example", cfg.Nostr.PublicKey)
	assert.Equal(t, "alice.bsky.social", cfg.Bluesky.Identifier)
	assert.Equal(t, "app-pass-1234", cfg.Bluesky.AppPassword)
	assert.Equal(t, "/var/lib/nostrsky/state.db", cfg.Database.Path)
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv("BLUESKY_APP_PASSWORD", "app-pass-1234")

	path := writeConfig(t, validConfigMap())
	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Nostr.MetadataTimeoutSec)
	assert.Equal(t, 30, cfg.Bluesky.TimeoutSec)
	assert.Equal(t, 10, cfg.Media.MaxImageSizeMB)
	assert.Equal(t, 4, cfg.Media.MaxImagesPerPost)
	assert.Equal(t, 30, cfg.Media.FetchTimeoutSec)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, 8082, cfg.Server.Port)
	assert.Equal(t, 24, cfg.Server.CleanupIntervalHours)
}

func TestLoadConfigMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg map[string]any)
		expected models.ConfigError
	}{
		{
			name:     "missing relay url",
			mutate:   func(cfg map[string]any) { delete(cfg["nostr"].(map[string]any), "relay_url") },
			expected: ErrMissingRelayURL,
		},
		{
			name:     "missing public key",
			mutate:   func(cfg map[string]any) { delete(cfg["nostr"].(map[string]any), "public_key") },
			expected: ErrMissingPublicKey,
		},
		{
			name:     "missing identifier",
			mutate:   func(cfg map[string]any) { delete(cfg["bluesky"].(map[string]any), "identifier") },
			expected: ErrMissingIdentifier,
		},
		{
			name:     "missing database path",
			mutate:   func(cfg map[string]any) { delete(cfg["database"].(map[string]any), "path") },
			expected: ErrMissingDBPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvOverrides(t)
			t.Setenv("BLUESKY_APP_PASSWORD", "app-pass-1234")

			cfgMap := validConfigMap()
			tt.mutate(cfgMap)

			cfg, err := LoadConfig(writeConfig(t, cfgMap))
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestLoadConfigRequiresAppPasswordFromEnvironment(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv("BLUESKY_APP_PASSWORD", "")

	cfg, err := LoadConfig(writeConfig(t, validConfigMap()))
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingAppPassword)
}

func TestLoadConfigAppPasswordNeverReadFromFile(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv("BLUESKY_APP_PASSWORD", "from-env")

	cfgMap := validConfigMap()
	cfgMap["bluesky"].(map[string]any)["app_password"] = "from-file"

	cfg, err := LoadConfig(writeConfig(t, cfgMap))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Bluesky.AppPassword)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("NOSTR_RELAY_URL", "wss://relay.override.example")
	t.Setenv("NOSTR_PUBLIC_KEY", "npub1override")
	t.Setenv("BLUESKY_PDS_URL", "https://pds.override.example")
	t.Setenv("BLUESKY_IDENTIFIER", "bob.bsky.social")
	t.Setenv("BLUESKY_APP_PASSWORD", "app-pass-1234")
	t.Setenv("DB_PATH", "/tmp/override.db")

	cfg, err := LoadConfig(writeConfig(t, validConfigMap()))

	require.NoError(t, err)
	assert.Equal(t, "wss://relay.override.example", cfg.Nostr.RelayURL)
	assert.Equal(t, "npub1override", cfg.Nostr.PublicKey)
	assert.Equal(t, "https://pds.override.example", cfg.Bluesky.PDSURL)
	assert.Equal(t, "bob.bsky.social", cfg.Bluesky.Identifier)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfigRejectsTraversalPath(t *testing.T) {
	cfg, err := LoadConfig("../../../etc/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
