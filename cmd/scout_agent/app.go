package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/config"
	"github.com/jonathan/talent-scout/internal/crawling"
	"github.com/jonathan/talent-scout/internal/db"
	"github.com/jonathan/talent-scout/internal/fetch"
	"github.com/jonathan/talent-scout/internal/logging"
	"github.com/jonathan/talent-scout/internal/profile"
)

// loadConfig layers the config file, environment and defaults, then applies
// the persistent flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = rootUseBrowser
	}
	if flags.Changed("max-pages") {
		cfg.MaxPages = rootMaxPages
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = rootConcurrency
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{Level: cfg.LogLevel, Development: cfg.Verbose})
}

// components holds what a search needs. database is nil when no
// DATABASE_URL is configured.
type components struct {
	crawler  *crawling.Crawler
	database *db.DB
}

func (c *components) Close() {
	if c.database != nil {
		c.database.Close()
	}
}

// connectDatabase opens and migrates the database, or returns nil when
// none is configured.
func connectDatabase(ctx context.Context, cfg config.Config, logger *zap.Logger) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx, logger); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// buildComponents wires the profile source, page fetcher and crawler.
func buildComponents(ctx context.Context, cfg config.Config, logger *zap.Logger) (*components, error) {
	if cfg.ProfileAPIURL == "" {
		return nil, fmt.Errorf("PROFILE_API_URL environment variable (or profile_api_url config) is required")
	}

	client, err := profile.NewClient(profile.ClientOptions{
		BaseURL:           cfg.ProfileAPIURL,
		APIKey:            cfg.ProfileAPIKey,
		RequestsPerSecond: cfg.ProfileRPS,
		Burst:             cfg.ProfileBurst,
	})
	if err != nil {
		return nil, err
	}

	database, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var source profile.Source = client
	if database != nil {
		source = profile.NewCachedSource(client, database, cfg.CacheTTL(), logger)
	} else {
		logger.Info("no database configured; profile cache and run history disabled")
	}

	pages := fetch.NewPageFetcher(fetch.PageFetcherOptions{
		UseBrowser:      cfg.UseBrowser,
		BrowserFallback: cfg.BrowserFallbackEnabled(),
		BrowserTimeout:  60 * time.Second,
		Logger:          logger,
	})

	crawler := crawling.NewCrawler(pages, source, crawling.Options{
		SearchEndpoint:    cfg.SearchEndpoint,
		ProfileSiteMarker: cfg.ProfileSiteMarker,
		MaxPages:          cfg.MaxPages,
		Concurrency:       cfg.Concurrency,
	}, logger)

	return &components{crawler: crawler, database: database}, nil
}
