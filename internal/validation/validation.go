package validation

import (
	"fmt"
	"net/url"

	"nostrsky/internal/errors"
)

// ValidateRelayURL validates a Nostr relay websocket URL
func ValidateRelayURL(relayURL string) error {
	if relayURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "relay URL cannot be empty")
	}

	u, err := url.Parse(relayURL)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "relay URL is not a valid URL")
	}

	if u.Scheme != "ws" && u.Scheme != "wss" {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("relay URL must use ws or wss scheme, got %q", u.Scheme))
	}

	if u.Host == "" {
		return errors.New(errors.ErrCodeInvalidInput, "relay URL has no host")
	}

	return nil
}

// ValidatePDSURL validates a Bluesky PDS endpoint. Empty is allowed; the
// client falls back to the public PDS.
func ValidatePDSURL(pdsURL string) error {
	if pdsURL == "" {
		return nil
	}

	u, err := url.Parse(pdsURL)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "PDS URL is not a valid URL")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("PDS URL must use http or https scheme, got %q", u.Scheme))
	}

	if u.Host == "" {
		return errors.New(errors.ErrCodeInvalidInput, "PDS URL has no host")
	}

	return nil
}

// ValidateTimeout validates timeout values
func ValidateTimeout(timeoutSec int, fieldName string) error {
	if timeoutSec < 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("%s must be at least 1 second", fieldName))
	}

	if timeoutSec > 3600 { // Max 1 hour
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("%s too large (max 3600 seconds)", fieldName))
	}

	return nil
}

// ValidatePort validates an HTTP listen port
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("port must be between 1 and 65535, got %d", port))
	}
	return nil
}

// ValidateRetentionDays validates data retention period
func ValidateRetentionDays(days int) error {
	if days < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "retention days must be at least 1")
	}

	if days > 3650 { // Max 10 years
		return errors.New(errors.ErrCodeInvalidInput, "retention days too large (max 3650)")
	}

	return nil
}

// ValidateImageLimits validates image attachment bounds. The per-post cap
// cannot exceed 4; the target network rejects larger galleries.
func ValidateImageLimits(maxSizeMB, maxImagesPerPost int) error {
	if maxSizeMB < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "max image size must be at least 1 MB")
	}
	if maxSizeMB > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "max image size too large (max 100 MB)")
	}

	if maxImagesPerPost < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "max images per post must be at least 1")
	}
	if maxImagesPerPost > 4 {
		return errors.New(errors.ErrCodeInvalidInput, "max images per post too large (max 4)")
	}

	return nil
}
