package constants

// Default pipeline configuration values
const (
	DefaultMaxImagesPerPost     = 4
	DefaultMaxImageSizeMB       = 10
	DefaultMetadataTimeoutSec   = 5
	DefaultMediaFetchTimeoutSec = 30
	DefaultRetentionDays        = 30
	DefaultCleanupIntervalHours = 24
)

// Default retry configuration values
const (
	DefaultRetryBackoffMs         = 1000
	DefaultMaxBackoffMs           = 60000
	DefaultDatabaseRetryAttempts  = 3
	DefaultRelayReconnectDelaySec = 5
)

// Default timeout values
const (
	DefaultBlueskyTimeoutSec     = 30
	DefaultGracefulShutdownSec   = 30
	DefaultServerReadTimeoutSec  = 15
	DefaultServerWriteTimeoutSec = 15
	DefaultServerIdleTimeoutSec  = 60
)

// Default server configuration values
const (
	DefaultServerPort           = 8082
	ServerErrorChannelSize      = 1
	SubscriptionEventBufferSize = 64
)

// Mention lookup circuit breaker settings
const (
	DefaultBreakerMaxFailures = 5
	DefaultBreakerTimeoutSec  = 60
)

// Post composition settings
const (
	ImageAltText         = "Image from Nostr"
	ContentPreviewLength = 100
)

// Privacy settings
const (
	DefaultEventIDLogLength = 8
	DefaultPubKeyMaskLength = 4
)
