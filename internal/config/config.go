package config

import (
	"encoding/json"
	"fmt"
	"os"

	"nostrsky/internal/constants"
	"nostrsky/internal/models"
	"nostrsky/internal/security"
	"nostrsky/internal/validation"
)

var (
	ErrMissingRelayURL    = models.ConfigError{Message: "missing Nostr relay URL"}
	ErrMissingPublicKey   = models.ConfigError{Message: "missing Nostr public key"}
	ErrMissingIdentifier  = models.ConfigError{Message: "missing Bluesky identifier"}
	ErrMissingAppPassword = models.ConfigError{Message: "missing Bluesky app password (set BLUESKY_APP_PASSWORD)"}
	ErrMissingDBPath      = models.ConfigError{Message: "missing database path"}
)

func LoadConfig(path string) (*models.Config, error) {
	if err := security.ValidateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	file, err := os.ReadFile(path) // #nosec G304 - Path validated above
	if err != nil {
		return nil, err
	}

	var config models.Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(c *models.Config) error {
	if c.Nostr.RelayURL == "" {
		return ErrMissingRelayURL
	}
	if c.Nostr.PublicKey == "" {
		return ErrMissingPublicKey
	}
	if c.Bluesky.Identifier == "" {
		return ErrMissingIdentifier
	}
	if c.Bluesky.AppPassword == "" {
		return ErrMissingAppPassword
	}
	if c.Database.Path == "" {
		return ErrMissingDBPath
	}

	if c.Nostr.MetadataTimeoutSec <= 0 {
		c.Nostr.MetadataTimeoutSec = constants.DefaultMetadataTimeoutSec
	}
	if c.Bluesky.TimeoutSec <= 0 {
		c.Bluesky.TimeoutSec = constants.DefaultBlueskyTimeoutSec
	}
	if c.Media.MaxImageSizeMB <= 0 {
		c.Media.MaxImageSizeMB = constants.DefaultMaxImageSizeMB
	}
	if c.Media.MaxImagesPerPost <= 0 {
		c.Media.MaxImagesPerPost = constants.DefaultMaxImagesPerPost
	}
	if c.Media.FetchTimeoutSec <= 0 {
		c.Media.FetchTimeoutSec = constants.DefaultMediaFetchTimeoutSec
	}
	if c.Retry.InitialBackoffMs <= 0 {
		c.Retry.InitialBackoffMs = constants.DefaultRetryBackoffMs
	}
	if c.Retry.MaxBackoffMs <= 0 {
		c.Retry.MaxBackoffMs = constants.DefaultMaxBackoffMs
	}
	if c.RetentionDays <= 0 {
		c.RetentionDays = constants.DefaultRetentionDays
	}
	if c.Server.Port <= 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	if c.Server.CleanupIntervalHours <= 0 {
		c.Server.CleanupIntervalHours = constants.DefaultCleanupIntervalHours
	}

	if err := validation.ValidateRelayURL(c.Nostr.RelayURL); err != nil {
		return fmt.Errorf("nostr.relay_url: %w", err)
	}
	if err := validation.ValidatePDSURL(c.Bluesky.PDSURL); err != nil {
		return fmt.Errorf("bluesky.pds_url: %w", err)
	}
	if err := validation.ValidateTimeout(c.Nostr.MetadataTimeoutSec, "metadata timeout"); err != nil {
		return err
	}
	if err := validation.ValidateTimeout(c.Bluesky.TimeoutSec, "bluesky timeout"); err != nil {
		return err
	}
	if err := validation.ValidateTimeout(c.Media.FetchTimeoutSec, "media fetch timeout"); err != nil {
		return err
	}
	if err := validation.ValidateImageLimits(c.Media.MaxImageSizeMB, c.Media.MaxImagesPerPost); err != nil {
		return err
	}
	if err := validation.ValidatePort(c.Server.Port); err != nil {
		return err
	}
	if err := validation.ValidateRetentionDays(c.RetentionDays); err != nil {
		return err
	}
	return nil
}

func applyEnvironmentOverrides(c *models.Config) {
	if url := os.Getenv("NOSTR_RELAY_URL"); url != "" {
		c.Nostr.RelayURL = url
	}
	if key := os.Getenv("NOSTR_PUBLIC_KEY"); key != "" {
		c.Nostr.PublicKey = key
	}
	if url := os.Getenv("BLUESKY_PDS_URL"); url != "" {
		c.Bluesky.PDSURL = url
	}
	if id := os.Getenv("BLUESKY_IDENTIFIER"); id != "" {
		c.Bluesky.Identifier = id
	}

	// The app password never lives in the config file.
	c.Bluesky.AppPassword = os.Getenv("BLUESKY_APP_PASSWORD")

	if path := os.Getenv("DB_PATH"); path != "" {
		c.Database.Path = path
	}
}
