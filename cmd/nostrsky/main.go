package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nostrsky/internal/config"
	"nostrsky/internal/constants"
	"nostrsky/internal/database"
	"nostrsky/internal/models"
	"nostrsky/internal/privacy"
	"nostrsky/internal/retry"
	"nostrsky/internal/service"
	"nostrsky/internal/tracing"
	"nostrsky/pkg/bluesky"
	"nostrsky/pkg/media"
	"nostrsky/pkg/nostr"

	"github.com/sirupsen/logrus"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	// CLI flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	configPath = flag.String("config", "config.json", "Path to configuration file")
	version    = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("nostrsky %s\nBuild Time: %s\nGit Commit: %s\n", Version, BuildTime, GitCommit)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logrus.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.WithFields(logrus.Fields{
		"version": Version,
		"build":   BuildTime,
		"commit":  GitCommit,
	}).Info("Starting nostrsky")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	configureLogLevel(logger, cfg)

	pubkeyHex, err := nostr.ParsePublicKey(cfg.Nostr.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid Nostr public key: %w", err)
	}
	logger.WithField("author", privacy.MaskPubKey(nostr.EncodeNpub(pubkeyHex))).Info("Monitoring Nostr identity")

	tracingManager := tracing.NewManager(tracing.Config{
		ServiceName:    "nostrsky",
		ServiceVersion: Version,
		Environment:    cfg.Tracing.Environment,
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
		SampleRate:     cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
		UseStdout:      cfg.Tracing.UseStdout,
	}, logger)

	if err := tracingManager.Initialize(ctx); err != nil {
		logger.Warnf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := tracingManager.Shutdown(context.Background()); err != nil {
			logger.Warnf("Failed to shutdown tracing: %v", err)
		}
	}()

	// Initialize database with exponential backoff retry
	var db *database.Database
	backoff := retry.NewBackoff(retry.BackoffConfig{
		InitialDelay: time.Duration(cfg.Retry.InitialBackoffMs) * time.Millisecond,
		MaxDelay:     time.Duration(cfg.Retry.MaxBackoffMs) * time.Millisecond,
		Multiplier:   2.0,
		MaxAttempts:  constants.DefaultDatabaseRetryAttempts,
		Jitter:       true,
	})

	err = backoff.Retry(ctx, func() error {
		var initErr error
		db, initErr = database.New(cfg.Database.Path)
		if initErr != nil {
			logger.Warnf("Failed to initialize database: %v", initErr)
		}
		return initErr
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database after retries: %w", err)
	}
	defer db.Close()

	bskyClient := bluesky.NewClient(cfg.Bluesky.PDSURL, time.Duration(cfg.Bluesky.TimeoutSec)*time.Second)
	if err := bskyClient.Login(ctx, cfg.Bluesky.Identifier, cfg.Bluesky.AppPassword); err != nil {
		return fmt.Errorf("failed to authenticate with Bluesky: %w", err)
	}
	logger.WithField("identifier", cfg.Bluesky.Identifier).Info("Authenticated with Bluesky")

	nostrClient := nostr.NewClient(cfg.Nostr.RelayURL, logger)
	if err := nostrClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to Nostr relay: %w", err)
	}
	defer func() {
		if err := nostrClient.Close(); err != nil {
			logger.Warnf("Failed to close relay connection: %v", err)
		}
	}()

	// Events created before the pipeline start are never cross-posted.
	cutoff := time.Now()
	logger.WithField("cutoff", cutoff.UTC().Format(time.RFC3339)).Info("Processing events since")

	store := service.NewProcessedEventStore(db, cutoff, logger)
	resolver := service.NewMentionResolver(nostrClient, time.Duration(cfg.Nostr.MetadataTimeoutSec)*time.Second, logger)
	fetcher := media.NewFetcher(time.Duration(cfg.Media.FetchTimeoutSec)*time.Second, cfg.Media.MaxImageSizeMB, logger)
	pipeline := service.NewPipeline(store, resolver, fetcher, bskyClient, cfg.Media.MaxImagesPerPost, logger)

	scheduler := service.NewScheduler(db, cfg.RetentionDays, cfg.Server.CleanupIntervalHours, logger)
	go scheduler.Start(ctx)
	defer scheduler.Stop()

	server := NewServer(cfg.Server.Port, db, logger)
	serverErrCh := make(chan error, constants.ServerErrorChannelSize)
	go func() {
		if err := server.Start(); err != nil {
			serverErrCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)
		pipeline.Run(ctx, nostrClient.Stream(ctx, pubkeyHex, cutoff))
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case <-pipelineDone:
		logger.Info("Pipeline finished")
	case err := <-serverErrCh:
		logger.Error(err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultGracefulShutdownSec*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	logger.Info("Shutdown complete")
	return nil
}

func configureLogLevel(logger *logrus.Logger, cfg *models.Config) {
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.Info("Verbose logging enabled")
		return
	}
	if cfg.LogLevel == "" {
		logger.SetLevel(logrus.InfoLevel)
		return
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level %q, defaulting to info", cfg.LogLevel)
		logger.SetLevel(logrus.InfoLevel)
		return
	}
	logger.SetLevel(level)
}
