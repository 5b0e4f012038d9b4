package models

// Config holds the application configuration
type Config struct {
	Nostr         NostrConfig    `json:"nostr"`
	Bluesky       BlueskyConfig  `json:"bluesky"`
	Database      DatabaseConfig `json:"database"`
	Media         MediaConfig    `json:"media"`
	Retry         RetryConfig    `json:"retry"`
	Tracing       TracingConfig  `json:"tracing"`
	Server        ServerConfig   `json:"server"`
	LogLevel      string         `json:"log_level"`
	RetentionDays int            `json:"retentionDays"`
}

// NostrConfig holds source-relay related configuration
type NostrConfig struct {
	RelayURL string `json:"relay_url"`
	// PublicKey is the monitored identity, either npub or 64-char hex.
	PublicKey          string `json:"public_key"`
	MetadataTimeoutSec int    `json:"metadataTimeoutSec"`
}

// BlueskyConfig holds target-network related configuration.
// AppPassword is intentionally not read from the config file; it comes
// from the BLUESKY_APP_PASSWORD environment variable.
type BlueskyConfig struct {
	PDSURL      string `json:"pds_url"`
	Identifier  string `json:"identifier"`
	AppPassword string `json:"-"`
	TimeoutSec  int    `json:"timeoutSec"`
}

// DatabaseConfig holds database related configuration
type DatabaseConfig struct {
	Path string `json:"path"`
}

// MediaConfig holds image attachment configuration
type MediaConfig struct {
	MaxImageSizeMB   int `json:"maxImageSizeMB"`
	MaxImagesPerPost int `json:"maxImagesPerPost"`
	FetchTimeoutSec  int `json:"fetchTimeoutSec"`
}

// RetryConfig holds retry related configuration
type RetryConfig struct {
	InitialBackoffMs int `json:"initialBackoffMs"`
	MaxBackoffMs     int `json:"maxBackoffMs"`
	MaxAttempts      int `json:"maxAttempts"`
}

// TracingConfig holds OpenTelemetry related configuration
type TracingConfig struct {
	Enabled      bool    `json:"enabled"`
	ServiceName  string  `json:"service_name"`
	Environment  string  `json:"environment"`
	OTLPEndpoint string  `json:"otlp_endpoint"`
	SampleRate   float64 `json:"sample_rate"`
	UseStdout    bool    `json:"use_stdout"`
}

// ServerConfig holds ops HTTP server configuration
type ServerConfig struct {
	Port                 int `json:"port"`
	CleanupIntervalHours int `json:"cleanupIntervalHours"`
}

type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
